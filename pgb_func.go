package pgb

import (
	"context"
	"encoding/json"
	"fmt"
)

/*
Describes a stored database function and the shape of its result:

	* `ReturnSingleValue`: every row has exactly one column, and each row is
	  replaced by that column's value.
	* `ReturnSingleRow`: the result has exactly one row, which is returned
	  instead of a slice.

The flags are independent and may be combined.
*/
type StoredFunc struct {
	Schema            string `yaml:"schema"`
	Name              string `yaml:"name"`
	ReturnSingleRow   bool   `yaml:"single_row"`
	ReturnSingleValue bool   `yaml:"single_value"`
}

// Schema-qualified quoted name, such as `"public"."some_func"`.
func (self StoredFunc) QualifiedName() string {
	return QualifiedName(self.Schema, self.Name)
}

/*
Returns the call expression for the given number of arguments:

	StoredFunc{Schema: `public`, Name: `add`}.CallText(2)
	// SELECT "public"."add"($1,$2)
*/
func (self StoredFunc) CallText(count int) string {
	buf := append([]byte(`SELECT `), self.QualifiedName()...)
	buf = append(buf, '(')
	for ind := 0; ind < count; ind++ {
		if ind > 0 {
			buf = append(buf, ',')
		}
		buf = appendOrdinal(buf, ind+1)
	}
	buf = append(buf, ')')
	return string(buf)
}

/*
Calls a stored function with positional arguments. The result type depends on
the `StoredFunc` flags:

	neither flag             -> []Row
	ReturnSingleValue        -> []any
	ReturnSingleRow          -> Row
	both                     -> any
*/
type FuncCaller func(ctx context.Context, args ...any) (any, error)

/*
Returns a Go function which calls the given stored function via the querier.
Each call runs exactly one query, then validates and normalizes the result as
described in `StoredFunc`. Shape violations fail with `ErrShapeMismatch`,
whose message includes the function name and the raw result.
*/
func MakeFuncCaller(querier Querier, fn StoredFunc) FuncCaller {
	return func(ctx context.Context, args ...any) (any, error) {
		rows, err := querier.QueryRows(ctx, fn.CallText(len(args)), args)
		if err != nil {
			return nil, Err{
				Code:  ErrCodeQuery,
				While: fmt.Sprintf(`calling function %v`, fn.QualifiedName()),
				Cause: err,
			}
		}
		return fn.normalize(rows)
	}
}

func (self StoredFunc) normalize(rows []Row) (any, error) {
	var vals []any

	if self.ReturnSingleValue {
		key, ok := singleKey(rows)
		if !ok {
			return nil, self.errShape(`single value`, rows)
		}

		vals = make([]any, len(rows))
		for ind, row := range rows {
			vals[ind] = row[key]
		}
	}

	if self.ReturnSingleRow {
		if len(rows) != 1 {
			return nil, self.errShape(`single row`, rows)
		}
		if self.ReturnSingleValue {
			return vals[0], nil
		}
		return rows[0], nil
	}

	if self.ReturnSingleValue {
		return vals, nil
	}
	return rows, nil
}

func (self StoredFunc) errShape(expected string, rows []Row) Err {
	return Err{
		Code:  ErrCodeShapeMismatch,
		While: fmt.Sprintf(`calling function %v`, self.QualifiedName()),
		Cause: fmt.Errorf(`expected return type: %v, current value: %s`, expected, rawResult(rows)),
	}
}

// The first row determines the shape.
func singleKey(rows []Row) (string, bool) {
	if len(rows) == 0 || len(rows[0]) != 1 {
		return ``, false
	}
	for key := range rows[0] {
		return key, true
	}
	return ``, false
}

func rawResult(rows []Row) string {
	out, err := json.Marshal(rows)
	if err != nil {
		return fmt.Sprintf(`%#v`, rows)
	}
	return string(out)
}
