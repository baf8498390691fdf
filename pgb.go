/*
Postgres SQL builder: small tools for writing PLAIN SQL against Postgres.
Converts named parameters into ordinal parameters, builds the usual trailing
clauses from structured options, converts result rows using a registry of type
parsers keyed by Postgres type OIDs, and wraps stored functions as Go
callables.

Key Features

• You write plain SQL. There's no DSL in Go.

• Named parameters such as `:ident` become ordinal parameters such as `$1`.
Parameters such as `:!ident` become quoted identifiers, for schema, table or
column names which can't be bound.

• Postgres casts such as `::text` are left alone.

• Options such as fields, ordering, grouping, limit and offset are converted to
SQL, with identifiers quoted.

• Result rows are checked for column name collisions and converted via
`TypeParsers`.

• Stored functions become Go functions with result shape validation. See
`MakeFuncCaller`.

Examples

	query, err := pgb.ProcessNamedParams(
		`select * from :!table where id = :id and name = :name::text`,
		pgb.NamedParams{"table": "users", "id": 10, "name": "some name"},
	)

	// select * from "users" where id = $1 and name = $2::text
	text, args := query.Reify()
*/
package pgb

import (
	"context"
	"errors"
)

// Arguments for `ProcessNamedParams` and related functions. Keys are parameter
// names without the leading ":".
type NamedParams = map[string]any

// Single result row keyed by column name, as produced by `Querier`.
type Row = map[string]any

/*
Query executor used by `MakeFuncCaller` and similar tools. The text must use
ordinal parameters such as "$1" which correspond to the args. Implemented by
`Conn`. Implementations own connection management, retries and timeouts.
*/
type Querier interface {
	QueryRows(ctx context.Context, text string, args []any) ([]Row, error)
}

// Function adapter for `Querier`.
type QuerierFunc func(context.Context, string, []any) ([]Row, error)

// Implement `Querier`.
func (self QuerierFunc) QueryRows(ctx context.Context, text string, args []any) ([]Row, error) {
	if self == nil {
		return nil, Err{Code: ErrCodeQuery, While: `querying`, Cause: errors.New(`missing query function`)}
	}
	return self(ctx, text, args)
}
