package pgb

import (
	"fmt"
	"strings"
)

/*
Converts named parameters into ordinal parameters, returning the resulting SQL
text and arguments:

	:ident   -> $N, the value is appended to the arguments
	:!ident  -> "value", quoted via `QuoteIdent`, for schema, table and column
	            names which can't be bound
	::ident  -> left alone (Postgres cast)

Each bound occurrence gets its own ordinal parameter, even when the same name
is used repeatedly. The arguments are in order of occurrence.

For example, this:

	query, err := ProcessNamedParams(
		`select * from :!table where a = :val and b = :val::text`,
		NamedParams{"table": "some_table", "val": 10},
	)

	text, args := query.Reify()

Is equivalent to this:

	text := `select * from "some_table" where a = $1 and b = $2::text`
	args := []any{10, 10}

Fails with `ErrMissingParameter` when a name isn't found in the params. The
params are never modified.

Values of ":!ident" parameters are only quoted, never validated. They should
come from the program, not from user input.
*/
func ProcessNamedParams(text string, params NamedParams) (Query, error) {
	return ProcessNamedParamsTyped(text, params, nil)
}

/*
Same as `ProcessNamedParams`, but before appending a bound value, converts it
via `TransformParam` using the field type declared for its name. Names without
a declared type are used as-is. Doesn't affect ":!ident" parameters.
*/
func ProcessNamedParamsTyped(text string, params NamedParams, types map[string]FieldType) (out Query, err error) {
	defer rec(&err)
	out.Text, out.Args = appendNamed(nil, nil, text, params, types)
	return
}

func appendNamed(
	buf []byte, args []any, src string, params NamedParams, types map[string]FieldType,
) ([]byte, []any) {
	tokenizer := Tokenizer{Source: src}

	for {
		tok := tokenizer.Next()
		if tok.IsInvalid() {
			break
		}

		switch tok.Type {
		case TokenTypeNamedParam, TokenTypeDdlParam:
			name := tok.ParamName()
			val, ok := params[name]
			if !ok {
				panic(errMissingParam(tok, params))
			}

			if tok.Type == TokenTypeDdlParam {
				buf = appendQuoteIdent(buf, ddlString(tok, val))
				continue
			}

			typ, ok := types[name]
			if ok {
				val = try1(TransformParam(val, typ))
			}

			args = append(args, val)
			buf = appendOrdinal(buf, len(args))

		default:
			buf = append(buf, tok.Text...)
		}
	}

	return buf, args
}

func ddlString(tok Token, val any) string {
	switch val := val.(type) {
	case nil:
		panic(errInvalid(`translating named parameters`, `identifier parameter %q is nil`, tok.Text))
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func errMissingParam(tok Token, params NamedParams) Err {
	return Err{
		Code:  ErrCodeMissingParameter,
		While: `translating named parameters`,
		Cause: fmt.Errorf(
			`no %q in params (keys: %v)`,
			strings.TrimPrefix(tok.Text, string(namedParamPrefix)),
			strings.Join(sortedKeys(params), `, `),
		),
	}
}
