package pgb

/*
Options for the projection and trailing clauses of a select query. See
`ProcessQueryFields` and `ProcessQueryOptions`. The zero value selects all
columns with no trailing clauses.

`Fields`, `GroupBy` and `OrderBy` are sum types: each accepts exactly one of
several shapes, represented by the types implementing the interface.
*/
type QueryOptions struct {
	// Projection. Nil means "*". See `FieldsRaw` and `FieldList`.
	Fields Fields

	// When true, the projection is preceded by "DISTINCT".
	Distinct bool

	// See `GroupField` and `GroupFields`.
	GroupBy GroupBy

	// See `OrderStr`, `OrderList`, `OrderDict` and `OrderMap`.
	OrderBy OrderBy

	// Zero means no limit or offset.
	Limit  int64
	Offset int64

	// When true, appends "FOR UPDATE".
	ForUpdate bool
}

/*
Validates the options. Negative limit and offset are rejected with
`ErrInvalidInput`.
*/
func (self QueryOptions) Validate() error {
	if self.Limit < 0 {
		return errInvalid(`validating query options`, `negative limit %v`, self.Limit)
	}
	if self.Offset < 0 {
		return errInvalid(`validating query options`, `negative offset %v`, self.Offset)
	}
	return nil
}

// Projection shape for `QueryOptions.Fields`. Implemented only by `FieldsRaw`
// and `FieldList`.
type Fields interface {
	appendFields([]byte) []byte
}

// Raw SQL fragment used as the projection verbatim, for example
// `count(*) as count`.
type FieldsRaw string

// Sequence of columns, each quoted via `QuoteField` and joined by ", ".
type FieldList []string

// Grouping shape for `QueryOptions.GroupBy`. Implemented only by `GroupField`
// and `GroupFields`.
type GroupBy interface {
	appendGroupBy([]byte) []byte
}

// Single grouping column, quoted via `QuoteField`.
type GroupField string

// Sequence of grouping columns, each quoted via `QuoteField` and joined by ",".
type GroupFields []string

/*
Ordering shape for `QueryOptions.OrderBy`. Implemented only by `OrderStr`,
`OrderList`, `OrderDict` and `OrderMap`.
*/
type OrderBy interface {
	appendOrderBy([]byte) []byte
}

/*
Single ordering such as "some_col" or "some_col desc". If the string has the
form "<ident>[ asc|desc]" (case-insensitive), only the identifier is quoted and
the direction is kept as written. Otherwise the whole string is quoted via
`QuoteField`.
*/
type OrderStr string

/*
Sequence of orderings joined by ",". Each element is either:

	* "+col": ascending, rendered as `"col" asc`.
	* "-col": descending, rendered as `"col" desc`.
	* Anything else: same rules as `OrderStr`.

A sigil overrides any direction written after the identifier: "-col asc" is
rendered as `"col" desc`.
*/
type OrderList []string

// Sequence of column-direction pairs, rendered in order as `"col" <dir>` and
// joined by ",". The direction is used verbatim.
type OrderDict []OrderPair

// Pair of column and direction used in `OrderDict`.
type OrderPair struct {
	Field string
	Dir   string
}

// Shortcut for an ascending `OrderPair`.
func OrdAsc(field string) OrderPair { return OrderPair{field, DirAsc.String()} }

// Shortcut for a descending `OrderPair`.
func OrdDesc(field string) OrderPair { return OrderPair{field, DirDesc.String()} }

/*
Mapping of column to direction, rendered as `"col" <dir>` and joined by ",".
Go maps don't preserve insertion order, so entries are rendered in sorted key
order. Use `OrderDict` to control the order.
*/
type OrderMap map[string]string
