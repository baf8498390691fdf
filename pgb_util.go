package pgb

import (
	"fmt"
	r "reflect"
	"regexp"
	"sort"
	"time"
	"unsafe"
)

const (
	ordinalParamPrefix = '$'
	namedParamPrefix   = ':'
	ddlParamMarker     = '!'
	quoteDouble        = '"'
	ordAscSigil        = '+'
	ordDescSigil       = '-'
)

var (
	typeTime = r.TypeOf((*time.Time)(nil)).Elem()

	charsetDigitDec   = new(charset).addStr(`0123456789`)
	charsetIdentAlpha = new(charset).addStr(`ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_`)
	charsetIdent      = new(charset).addSet(charsetIdentAlpha).addSet(charsetDigitDec)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}

/*
Matches an ordering string such as "some_col" or "some_col desc". The
identifier may not contain double quotes, spaces or parens. The direction is
case-insensitive and preceded by exactly one space.
*/
var ordReg = regexp.MustCompile(`^([^" (]+)( (?i:asc|desc))?$`)

// Date and optional time fields of a Postgres text timestamp.
var timeFieldsReg = regexp.MustCompile(`^(\d+)-(\d\d)-(\d\d)(?: (\d\d):(\d\d):(\d\d))?`)

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func appendOrdinal(buf []byte, ord int) []byte {
	buf = append(buf, ordinalParamPrefix)
	return fmt.Appendf(buf, `%d`, ord)
}

func sortedKeys[Val any](src map[string]Val) []string {
	out := make([]string, 0, len(src))
	for key := range src {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func isNil(val any) bool {
	return val == nil || isValueNil(r.ValueOf(val))
}

func isValueNil(val r.Value) bool {
	return !val.IsValid() || isNilable(val.Kind()) && val.IsNil()
}

func isNilable(kind r.Kind) bool {
	switch kind {
	case r.Chan, r.Func, r.Interface, r.Map, r.Ptr, r.Slice:
		return true
	default:
		return false
	}
}

func typeName(typ r.Type) string {
	if typ == nil {
		return `nil`
	}
	return typ.String()
}
