package pgb

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq/oid"
)

/*
Implements `Querier` on top of `sqlx`. The inner database handle may be
`*sqlx.DB`, `*sqlx.Tx` or anything else implementing `sqlx.QueryerContext`;
connection management and transactions remain the caller's concern.

Every query is post-processed via `PostProcessResult` with `.Parsers`. Failed
queries are reported to `.Logger` along with `.ID`.
*/
type Conn struct {
	DB      sqlx.QueryerContext
	Parsers TypeParsers
	Logger  Logger
	ID      string
}

/*
Implement `Querier`. Runs the query, scans every row into a `Row`, resolves
column type OIDs from the driver's type names, and converts the values via
`PostProcessResult`.
*/
func (self Conn) QueryRows(ctx context.Context, text string, args []any) ([]Row, error) {
	rows, fields, err := self.query(ctx, text, args)
	if err != nil {
		LogError(self.Logger, text, args, self.ID)
		return nil, err
	}

	err = PostProcessResult(rows, fields, self.Parsers)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

/*
Converts named parameters via `ProcessNamedParams` and runs the resulting query
via `.QueryRows`.
*/
func (self Conn) QueryNamed(ctx context.Context, text string, params NamedParams) ([]Row, error) {
	query, err := ProcessNamedParams(text, params)
	if err != nil {
		return nil, err
	}
	return self.QueryRows(ctx, query.String(), query.Args)
}

// Runs the query via `.QueryRows`. Shortcut for statements built by `Table`.
func (self Conn) Run(ctx context.Context, query Query) ([]Row, error) {
	return self.QueryRows(ctx, query.String(), query.Args)
}

// Shortcut for `MakeFuncCaller` using this conn.
func (self Conn) Func(fn StoredFunc) FuncCaller {
	return MakeFuncCaller(self, fn)
}

func (self Conn) query(ctx context.Context, text string, args []any) (_ []Row, _ []ResultField, err error) {
	if self.DB == nil {
		return nil, nil, Err{Code: ErrCodeQuery, While: `querying`, Cause: errors.New(`missing database handle`)}
	}

	rows, err := self.DB.QueryxContext(ctx, text, args...)
	if err != nil {
		return nil, nil, errQuery(err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, errQuery(err)
	}

	fields := make([]ResultField, len(colTypes))
	for ind, col := range colTypes {
		fields[ind] = ResultField{
			Name:       col.Name(),
			DataTypeID: typeNameOid(col.DatabaseTypeName()),
		}
	}

	var out []Row
	for rows.Next() {
		row := Row{}
		err = rows.MapScan(row)
		if err != nil {
			return nil, nil, errQuery(err)
		}
		out = append(out, row)
	}

	err = rows.Err()
	if err != nil {
		return nil, nil, errQuery(err)
	}
	return out, fields, nil
}

func errQuery(err error) Err {
	return Err{Code: ErrCodeQuery, While: `querying`, Cause: err}
}

var typeNameOids = func() map[string]oid.Oid {
	out := make(map[string]oid.Oid, len(oid.TypeName))
	for key, val := range oid.TypeName {
		out[val] = key
	}
	return out
}()

/*
Resolves a database type name, as reported by `sql.ColumnType`, to a Postgres
type OID. Unknown names resolve to 0, which has no parser.
*/
func typeNameOid(name string) oid.Oid {
	return typeNameOids[strings.ToUpper(name)]
}
