package pgb

import (
	"strings"
)

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "asc", "desc".
type Dir byte

// Implement `fmt.Stringer` for debug purposes.
func (self Dir) String() string {
	switch self {
	default:
		return ``
	case DirAsc:
		return `asc`
	case DirDesc:
		return `desc`
	}
}

// Parses from a string, which must be either empty, "asc" or "desc". Parsing is
// case-insensitive.
func (self *Dir) Parse(src string) error {
	switch {
	case src == ``:
		*self = DirNone
		return nil
	case strings.EqualFold(src, `asc`):
		*self = DirAsc
		return nil
	case strings.EqualFold(src, `desc`):
		*self = DirDesc
		return nil
	default:
		return errInvalid(`parsing order direction`, `unrecognized direction %q`, src)
	}
}

// Implement `encoding.TextUnmarshaler`.
func (self *Dir) UnmarshalText(src []byte) error {
	return self.Parse(bytesToMutableString(src))
}

// Implement `encoding.TextMarshaler`.
func (self Dir) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

/*
Parses an ordering string such as "some_col" or "some_col desc". Returns the
identifier, the direction token exactly as written including its leading space
(or empty), and whether the input matched. The identifier may not contain
double quotes, spaces or parens.
*/
func parseOrd(src string) (ident string, dir string, ok bool) {
	match := ordReg.FindStringSubmatch(src)
	if match == nil {
		return ``, ``, false
	}
	return match[1], match[2], true
}
