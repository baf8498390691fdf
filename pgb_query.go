package pgb

import (
	"fmt"

	"github.com/mitranim/sqlp"
)

/*
SQL text with ordinal parameters such as "$1", and the corresponding arguments.
Returned by `ProcessNamedParams` and the `Table` statement builders. Can be
composed: `.Append` and `.AppendNamed` renumerate ordinal parameters, making it
easy to join fragments without mis-numbering.
*/
type Query struct {
	Text []byte
	Args []any
}

// Implement `fmt.Stringer`.
func (self Query) String() string {
	return bytesToMutableString(self.Text)
}

// Shortcut for `self.String(), self.Args`. Go database drivers tend to require
// `string, []any` as inputs for queries and statements.
func (self Query) Reify() (string, []any) {
	return self.String(), self.Args
}

/*
Appends code and arguments. Renumerates ordinal parameters, offsetting them by
the previous argument count. The count in the code always starts from `$1`.

For example, this:

	var query Query
	query.Append(`where true`)
	query.Append(`and one = $1`, 10)
	query.Append(`and two = $1`, 20) // Note the $1.

	text := query.String()
	args := query.Args

Is equivalent to this:

	text := `where true and one = $1 and two = $2`
	args := []any{10, 20}

Panics when: the code is malformed; the code has named parameters; a parameter
doesn't have a corresponding argument; an argument doesn't have a corresponding
parameter.
*/
func (self *Query) Append(src string, args ...any) {
	tokenizer := sqlp.Tokenizer{Source: src}
	offset := len(self.Args)
	self.Args = append(self.Args, args...)
	used := make([]bool, len(args))

	appendSpaceIfNeeded(&self.Text, src)

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			index := node.Index()
			if index < 0 || index >= len(args) {
				panic(Err{
					Code:  ErrCodeInvalidInput,
					While: `appending to query`,
					Cause: fmt.Errorf(`ordinal parameter %v exceeds argument count %v`, node, len(args)),
				})
			}
			used[index] = true
			sqlp.NodeOrdinalParam(int(node) + offset).Append(&self.Text)

		case sqlp.NodeNamedParam:
			panic(Err{
				Code:  ErrCodeInvalidInput,
				While: `appending to query`,
				Cause: fmt.Errorf(`expected only ordinal params, got named param %q`, node),
			})

		default:
			node.Append(&self.Text)
		}
	}

	for ind, ok := range used {
		if !ok {
			panic(Err{
				Code:  ErrCodeInvalidInput,
				While: `appending to query`,
				Cause: fmt.Errorf(`unused argument %#v at index %v`, args[ind], ind),
			})
		}
	}
}

/*
Appends code with named parameters, converting them as described in
`ProcessNamedParams`. The resulting ordinal parameters are numbered after the
arguments already in the query. The code is scanned only by the named parameter
tokenizer, so placeholders inside string literals and comments are converted
exactly like `ProcessNamedParams` converts them.

Panics when a name isn't found in the params. On panic, the query is unchanged.
*/
func (self *Query) AppendNamed(src string, params NamedParams) {
	self.AppendNamedTyped(src, params, nil)
}

// Same as `.AppendNamed`, but converts bound values as described in
// `ProcessNamedParamsTyped`.
func (self *Query) AppendNamedTyped(src string, params NamedParams, types map[string]FieldType) {
	text := self.Text
	appendSpaceIfNeeded(&text, src)
	self.Text, self.Args = appendNamed(text, self.Args, src, params, types)
}

/*
Appends the other query to this one, combining the arguments and renumerating
the ordinal parameters as appropriate.
*/
func (self *Query) AppendQuery(query Query) {
	self.Append(query.String(), query.Args...)
}

/*
Appends text verbatim, without parsing or renumerating anything. Intended for
fragments generated by this package, such as `ProcessQueryOptions`.
*/
func (self *Query) AppendRaw(src string) {
	self.Text = append(self.Text, src...)
}

/*
"Zeroes" the query, keeping any already-allocated capacity. Similar to
`query = pgb.Query{}`, but slightly clearer and marginally more efficient for
subsequent query building.
*/
func (self *Query) Clear() {
	self.Text = self.Text[:0]
	self.Args = self.Args[:0]
}

func appendSpaceIfNeeded(buf *[]byte, next string) {
	text := *buf
	if len(text) == 0 || len(next) == 0 {
		return
	}
	if isWhitespaceChar(text[len(text)-1]) || isWhitespaceChar(next[0]) {
		return
	}
	*buf = append(text, ' ')
}

func isWhitespaceChar(char byte) bool {
	switch char {
	case ' ', '\n', '\r', '\t', '\v':
		return true
	default:
		return false
	}
}
