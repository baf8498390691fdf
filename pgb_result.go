package pgb

import (
	"fmt"

	"github.com/lib/pq/oid"
)

// Describes one column of a result set: its output name and the Postgres type
// OID reported by the driver.
type ResultField struct {
	Name       string
	DataTypeID oid.Oid
}

/*
Converts a column value from its text representation. Must not retain the input.
Never receives nulls.
*/
type TypeParser func(string) (any, error)

/*
Registry of type parsers keyed by Postgres type OID. Owned by the caller and
only read by this package. See `DefaultTypeParsers`.
*/
type TypeParsers map[oid.Oid]TypeParser

/*
Validates and converts rows returned by the driver, in place:

	* If the first row has fewer keys than there are fields, two or more
	  selected columns have the same output name, and all but one were silently
	  lost. This fails with `ErrColumnCollision`.

	* Otherwise, converts the values via `ConvertTypes`.

Empty input is a nop.
*/
func PostProcessResult(rows []Row, fields []ResultField, parsers TypeParsers) error {
	if len(rows) == 0 {
		return nil
	}

	if len(rows[0]) != len(fields) {
		return Err{
			Code:  ErrCodeColumnCollision,
			While: `post-processing query result`,
			Cause: fmt.Errorf(
				`two or more fields have the same name: got %v columns but %v distinct names`,
				len(fields), len(rows[0]),
			),
		}
	}

	return ConvertTypes(rows, fields, parsers)
}

/*
For each field whose type OID has a parser, replaces the field's value in every
row with the parsed value. Nulls stay null and are never passed to parsers.
Text values (`string` and `[]byte`) are parsed. Values which the driver has
already decoded into other Go types are left alone. Fields without a parser are
left alone. Fails with `ErrTypeParse` if a parser fails.
*/
func ConvertTypes(rows []Row, fields []ResultField, parsers TypeParsers) error {
	for _, field := range fields {
		parser := parsers[field.DataTypeID]
		if parser == nil {
			continue
		}

		for _, row := range rows {
			val, err := convertCell(row[field.Name], parser)
			if err != nil {
				return Err{
					Code:  ErrCodeTypeParse,
					While: fmt.Sprintf(`converting column %q of type %v`, field.Name, oidName(field.DataTypeID)),
					Cause: err,
				}
			}
			row[field.Name] = val
		}
	}
	return nil
}

func convertCell(val any, parser TypeParser) (any, error) {
	switch val := val.(type) {
	case nil:
		return nil, nil
	case string:
		return parser(val)
	case []byte:
		if val == nil {
			return nil, nil
		}
		return parser(string(val))
	default:
		return val, nil
	}
}

func oidName(val oid.Oid) string {
	name, ok := oid.TypeName[val]
	if ok {
		return name
	}
	return fmt.Sprintf(`oid %d`, val)
}
