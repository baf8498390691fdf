package pgb

import (
	"fmt"
	r "reflect"

	"github.com/mitranim/refut"
)

// Struct tag used by `StructTypes` to declare field types, for example
// `pgb:"json"`.
const TagNameType = `pgb`

/*
Scans a struct, accumulating fields tagged with `db` into a map suitable for
`ProcessNamedParams` and `Table.Insert`. The input must be a struct or a struct
pointer. A nil pointer is fine and produces an empty non-nil map. Panics on
other inputs. Treats embedded structs as part of enclosing structs.
*/
func StructParams(input any) NamedParams {
	out := NamedParams{}
	traverseStructDbFields(input, func(name string, _ r.StructField, value any) {
		out[name] = value
	})
	return out
}

/*
Scans a struct, returning the field types of its `db`-tagged fields, suitable
for `ProcessNamedParamsTyped` and `Table.Insert`. Fields of type `time.Time` or
`*time.Time` have `FieldTypeTime`. Fields tagged `pgb:"json"` have
`FieldTypeJson`. Other fields are omitted. Accepts the same inputs as
`StructParams`.
*/
func StructTypes(input any) map[string]FieldType {
	out := map[string]FieldType{}
	traverseStructDbFields(input, func(name string, sfield r.StructField, _ any) {
		switch {
		case sfield.Tag.Get(TagNameType) == `json`:
			out[name] = FieldTypeJson
		case refut.RtypeDeref(sfield.Type) == typeTime:
			out[name] = FieldTypeTime
		}
	})
	return out
}

/*
Takes a struct type carrier and returns its `db` column names as `FieldList`,
for use in `QueryOptions.Fields`. Also accepts struct pointers, struct slices
and pointers to struct slices, which may be nil. Panics on other inputs.
*/
func StructFields(dest any) FieldList {
	rtype := r.TypeOf(dest)
	if rtype != nil {
		rtype = refut.RtypeDeref(rtype)
	}
	if rtype != nil && rtype.Kind() == r.Slice {
		rtype = refut.RtypeDeref(rtype.Elem())
	}
	reqStructType(`generating struct fields`, rtype)

	var out FieldList
	err := refut.TraverseStructRtype(rtype, func(sfield r.StructField, _ []int) error {
		name := sfieldColumnName(sfield)
		if name != `` {
			out = append(out, name)
		}
		return nil
	})
	try(err)
	return out
}

func traverseStructDbFields(input any, fun func(string, r.StructField, any)) {
	rval := r.ValueOf(input)
	var rtype r.Type
	if rval.IsValid() {
		rtype = refut.RtypeDeref(rval.Type())
	}
	reqStructType(`traversing struct for DB fields`, rtype)

	if refut.IsRvalNil(rval) {
		return
	}

	err := refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		name := sfieldColumnName(sfield)
		if name == `` {
			return nil
		}
		fun(name, sfield, rval.Interface())
		return nil
	})
	try(err)
}

func reqStructType(while string, rtype r.Type) {
	if rtype == nil || rtype.Kind() != r.Struct {
		panic(Err{
			Code:  ErrCodeInvalidInput,
			While: while,
			Cause: fmt.Errorf(`expected struct, got %q`, typeName(rtype)),
		})
	}
}

func sfieldColumnName(sfield r.StructField) string {
	return refut.TagIdent(sfield.Tag.Get(`db`))
}
