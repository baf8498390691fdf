package pgb

import (
	"context"
	"errors"
	"testing"
)

type fakeQuerier struct {
	rows  []Row
	err   error
	calls []fakeCall
}

type fakeCall struct {
	text string
	args []any
}

func (self *fakeQuerier) QueryRows(_ context.Context, text string, args []any) ([]Row, error) {
	self.calls = append(self.calls, fakeCall{text, args})
	return self.rows, self.err
}

func TestStoredFunc_CallText(t *testing.T) {
	fn := StoredFunc{Schema: `public`, Name: `add`}
	eq(t, `"public"."add"`, fn.QualifiedName())
	eq(t, `SELECT "public"."add"()`, fn.CallText(0))
	eq(t, `SELECT "public"."add"($1)`, fn.CallText(1))
	eq(t, `SELECT "public"."add"($1,$2,$3)`, fn.CallText(3))

	eq(t, `SELECT "some""schema"."fn"($1)`, StoredFunc{Schema: `some"schema`, Name: `fn`}.CallText(1))
	eq(t, `SELECT "fn"()`, StoredFunc{Name: `fn`}.CallText(0))
}

func TestMakeFuncCaller(t *testing.T) {
	ctx := context.Background()

	call := func(fn StoredFunc, rows []Row, args ...any) (any, error) {
		return MakeFuncCaller(&fakeQuerier{rows: rows}, fn)(ctx, args...)
	}

	succeed := func(exp any, fn StoredFunc, rows []Row) {
		t.Helper()
		out, err := call(fn, rows)
		noErr(t, err)
		eq(t, exp, out)
	}

	fail := func(fn StoredFunc, rows []Row, subs ...string) {
		t.Helper()
		out, err := call(fn, rows)
		errIs(t, ErrShapeMismatch, err)
		errMsg(t, err, subs...)
		eq(t, nil, out)
	}

	base := StoredFunc{Schema: `public`, Name: `fn`}
	single := base
	single.ReturnSingleRow = true
	value := base
	value.ReturnSingleValue = true
	both := single
	both.ReturnSingleValue = true

	t.Run(`sends_positional_args`, func(t *testing.T) {
		querier := &fakeQuerier{}
		_, err := MakeFuncCaller(querier, base)(ctx, 10, `two`)
		noErr(t, err)
		eq(t, []fakeCall{{`SELECT "public"."fn"($1,$2)`, list{10, `two`}}}, querier.calls)
	})

	t.Run(`rows`, func(t *testing.T) {
		succeed([]Row{{`x`: 5}, {`x`: 6}}, base, []Row{{`x`: 5}, {`x`: 6}})
		succeed([]Row(nil), base, nil)
	})

	t.Run(`single_value`, func(t *testing.T) {
		succeed(list{5, 6}, value, []Row{{`x`: 5}, {`x`: 6}})
		succeed(list{nil}, value, []Row{{`x`: nil}})
		fail(value, []Row{{`x`: 5, `y`: 6}}, `single value`, `public`, `"y":6`)
		fail(value, nil, `single value`, `current value: null`)
		fail(value, []Row{{}}, `single value`)
	})

	t.Run(`single_row`, func(t *testing.T) {
		succeed(Row{`x`: 5, `y`: 6}, single, []Row{{`x`: 5, `y`: 6}})
		fail(single, nil, `single row`)
		fail(single, []Row{{`x`: 5}, {`x`: 6}}, `single row`, `[{"x":5},{"x":6}]`)
	})

	t.Run(`single_row_single_value`, func(t *testing.T) {
		succeed(5, both, []Row{{`x`: 5}})
		fail(both, []Row{{`x`: 5}, {`x`: 6}}, `single row`)
		fail(both, []Row{{`x`: 5, `y`: 6}}, `single value`)
	})

	t.Run(`querier_failure`, func(t *testing.T) {
		cause := errors.New(`connection refused`)
		out, err := MakeFuncCaller(&fakeQuerier{err: cause}, base)(ctx)
		errIs(t, ErrQuery, err)
		errIs(t, cause, err)
		errMsg(t, err, `"public"."fn"`)
		eq(t, nil, out)
	})
}

func TestQuerierFunc(t *testing.T) {
	var querier Querier = QuerierFunc(func(_ context.Context, text string, args []any) ([]Row, error) {
		return []Row{{`text`: text, `count`: len(args)}}, nil
	})

	out, err := MakeFuncCaller(querier, StoredFunc{Name: `fn`, ReturnSingleRow: true})(context.Background(), 1, 2)
	noErr(t, err)
	eq(t, Row{`text`: `SELECT "fn"($1,$2)`, `count`: 2}, out)
}

func TestQuerierFunc_nil(t *testing.T) {
	rows, err := QuerierFunc(nil).QueryRows(context.Background(), `select 1`, nil)
	errIs(t, ErrQuery, err)
	eq(t, []Row(nil), rows)

	_, err = MakeFuncCaller(QuerierFunc(nil), StoredFunc{Name: `fn`})(context.Background())
	errIs(t, ErrQuery, err)
}
