package pgb

import (
	"strings"
)

/*
Quotes a column or field reference, unless it already looks like an expression:
a string containing a double quote or a paren is returned as-is, which allows
inputs such as `"Some Col"` or `count(*)`. Does not escape anything. Intended
only for identifiers provided by the program, never for user data. For
arbitrary names, use `QuoteIdent`.

	QuoteField(`one`)       == `"one"`
	QuoteField(`"one"`)     == `"one"`
	QuoteField(`count(*)`)  == `count(*)`
*/
func QuoteField(val string) string {
	if strings.ContainsAny(val, `"(`) {
		return val
	}
	return `"` + val + `"`
}

/*
Quotes an arbitrary identifier, doubling any embedded double quotes. Used for
`:!name` parameters and for schema-qualified names.

	QuoteIdent(`one`)      == `"one"`
	QuoteIdent(`one"two`)  == `"one""two"`
*/
func QuoteIdent(val string) string {
	return string(appendQuoteIdent(nil, val))
}

/*
Quotes each non-empty part via `QuoteIdent` and joins them with ".":

	QualifiedName(`public`, `users`) == `"public"."users"`
	QualifiedName(``, `users`)       == `"users"`
*/
func QualifiedName(parts ...string) string {
	var buf []byte
	for _, val := range parts {
		if val == `` {
			continue
		}
		if len(buf) > 0 {
			buf = append(buf, '.')
		}
		buf = appendQuoteIdent(buf, val)
	}
	return string(buf)
}

func appendQuoteIdent(buf []byte, val string) []byte {
	buf = append(buf, quoteDouble)
	for ind := 0; ind < len(val); ind++ {
		char := val[ind]
		if char == quoteDouble {
			buf = append(buf, quoteDouble)
		}
		buf = append(buf, char)
	}
	buf = append(buf, quoteDouble)
	return buf
}
