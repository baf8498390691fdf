package pgb

import (
	"testing"
	"time"
)

var testTable = Table{Schema: `public`, Name: `users`}

func TestTable_Select(t *testing.T) {
	test := func(expText string, expArgs []any, where string, params NamedParams, opt QueryOptions) {
		t.Helper()
		query, err := testTable.Select(where, params, opt)
		noErr(t, err)
		eq(t, expText, query.String())
		eq(t, expArgs, query.Args)
	}

	test(`SELECT * FROM "public"."users"`, list(nil), ``, nil, QueryOptions{})

	test(
		`SELECT DISTINCT "id", "name" FROM "public"."users" WHERE id = $1 or name = $2 ORDER BY "id" desc LIMIT 1 FOR UPDATE`,
		list{10, `some name`},
		`id = :id or name = :name`,
		NamedParams{`id`: 10, `name`: `some name`},
		QueryOptions{
			Fields:    FieldList{`id`, `name`},
			Distinct:  true,
			OrderBy:   OrderList{`-id`},
			Limit:     1,
			ForUpdate: true,
		},
	)

	test(
		`SELECT count(*) FROM "public"."users" WHERE "name" = $1 GROUP BY "name"`,
		list{`one`},
		`:!col = :val`,
		NamedParams{`col`: `name`, `val`: `one`},
		QueryOptions{Fields: FieldsRaw(`count(*)`), GroupBy: GroupField(`name`)},
	)

	t.Run(`without_schema`, func(t *testing.T) {
		query, err := Table{Name: `users`}.Select(``, nil, QueryOptions{Offset: 20})
		noErr(t, err)
		eq(t, `SELECT * FROM "users" OFFSET 20`, query.String())
	})

	t.Run(`errors`, func(t *testing.T) {
		_, err := testTable.Select(``, nil, QueryOptions{Limit: -1})
		errIs(t, ErrInvalidInput, err)

		_, err = testTable.Select(`id = :id`, nil, QueryOptions{})
		errIs(t, ErrMissingParameter, err)
	})
}

func TestTable_where_matches_ProcessNamedParams(t *testing.T) {
	params := NamedParams{`x`: 1, `id`: 2}

	for _, where := range []string{
		`note = ':x' and id = :id`,
		`id = :id -- see :x`,
		`note = ':x' /* :id */`,
	} {
		exp, err := ProcessNamedParams(where, params)
		noErr(t, err)

		query, err := Table{Name: `t`}.Select(where, params, QueryOptions{})
		noErr(t, err)
		eq(t, `SELECT * FROM "t" WHERE `+exp.String(), query.String())
		eq(t, exp.Args, query.Args)

		query, err = Table{Name: `t`}.Delete(where, params)
		noErr(t, err)
		eq(t, `DELETE FROM "t" WHERE `+exp.String()+` RETURNING *`, query.String())
		eq(t, exp.Args, query.Args)
	}

	query, err := Table{Name: `t`}.Update(NamedParams{`a`: 0}, nil, `note = ':x' and id = :id`, params)
	noErr(t, err)
	eq(t, `UPDATE "t" SET "a"=$1 WHERE note = '$2' and id = $3 RETURNING *`, query.String())
	eq(t, list{0, 1, 2}, query.Args)
}

func TestTable_errors_return_empty_query(t *testing.T) {
	query, err := testTable.Select(`id = :id`, nil, QueryOptions{})
	errIs(t, ErrMissingParameter, err)
	eq(t, Query{}, query)

	query, err = testTable.Update(NamedParams{`a`: 1}, nil, `id = :id`, nil)
	errIs(t, ErrMissingParameter, err)
	eq(t, Query{}, query)

	query, err = testTable.Delete(`id = :id`, nil)
	errIs(t, ErrMissingParameter, err)
	eq(t, Query{}, query)

	query, err = testTable.Insert(NamedParams{`at`: `2020-13-45`}, map[string]FieldType{`at`: FieldTypeTime})
	errIs(t, ErrInvalidInput, err)
	eq(t, Query{}, query)
}

func TestTable_Insert(t *testing.T) {
	query, err := testTable.Insert(
		NamedParams{`name`: `some name`, `meta`: map[string]int{`one`: 1}, `created_at`: int64(0)},
		map[string]FieldType{`meta`: FieldTypeJson, `created_at`: FieldTypeTime},
	)
	noErr(t, err)
	eq(t, `INSERT INTO "public"."users" ("created_at","meta","name") VALUES ($1,$2,$3) RETURNING *`, query.String())
	eq(t, list{time.UnixMilli(0), `{"one":1}`, `some name`}, query.Args)

	t.Run(`quotes_column_names`, func(t *testing.T) {
		query, err := Table{Name: `t`}.Insert(NamedParams{`some"col`: 1}, nil)
		noErr(t, err)
		eq(t, `INSERT INTO "t" ("some""col") VALUES ($1) RETURNING *`, query.String())
	})

	t.Run(`errors`, func(t *testing.T) {
		_, err := testTable.Insert(nil, nil)
		errIs(t, ErrInvalidInput, err)

		_, err = testTable.Insert(NamedParams{`at`: `not a time`}, map[string]FieldType{`at`: FieldTypeTime})
		errIs(t, ErrInvalidInput, err)
	})
}

func TestTable_Update(t *testing.T) {
	query, err := testTable.Update(
		NamedParams{`name`: `new name`, `meta`: list{1}},
		map[string]FieldType{`meta`: FieldTypeJson},
		`id = :id and name <> :name`,
		NamedParams{`id`: 10, `name`: `old name`},
	)
	noErr(t, err)
	eq(t, `UPDATE "public"."users" SET "meta"=$1,"name"=$2 WHERE id = $3 and name <> $4 RETURNING *`, query.String())
	eq(t, list{`[1]`, `new name`, 10, `old name`}, query.Args)

	t.Run(`without_where`, func(t *testing.T) {
		query, err := testTable.Update(NamedParams{`a`: 1}, nil, ``, nil)
		noErr(t, err)
		eq(t, `UPDATE "public"."users" SET "a"=$1 RETURNING *`, query.String())
	})

	t.Run(`errors`, func(t *testing.T) {
		_, err := testTable.Update(nil, nil, `id = :id`, NamedParams{`id`: 1})
		errIs(t, ErrInvalidInput, err)

		_, err = testTable.Update(NamedParams{`a`: 1}, nil, `id = :id`, nil)
		errIs(t, ErrMissingParameter, err)
	})
}

func TestTable_Delete(t *testing.T) {
	query, err := testTable.Delete(`id = :id`, NamedParams{`id`: 10})
	noErr(t, err)
	eq(t, `DELETE FROM "public"."users" WHERE id = $1 RETURNING *`, query.String())
	eq(t, list{10}, query.Args)

	query, err = Table{Name: `t`}.Delete(``, nil)
	noErr(t, err)
	eq(t, `DELETE FROM "t" RETURNING *`, query.String())
	eq(t, list(nil), query.Args)
}
