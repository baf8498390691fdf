package pgb

import (
	"errors"
	"fmt"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown          ErrCode = ""
	ErrCodeInvalidInput     ErrCode = "InvalidInput"
	ErrCodeMissingParameter ErrCode = "MissingParameter"
	ErrCodeColumnCollision  ErrCode = "ColumnCollision"
	ErrCodeShapeMismatch    ErrCode = "ShapeMismatch"
	ErrCodeTypeParse        ErrCode = "TypeParse"
	ErrCodeQuery            ErrCode = "Query"
	ErrCodeInternal         ErrCode = "Internal"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, pgb.ErrMissingParameter) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrInvalidInput     = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrMissingParameter = Err{Code: ErrCodeMissingParameter, Cause: errors.New(`missing named parameter`)}
	ErrColumnCollision  = Err{Code: ErrCodeColumnCollision, Cause: errors.New(`column name collision`)}
	ErrShapeMismatch    = Err{Code: ErrCodeShapeMismatch, Cause: errors.New(`function result shape mismatch`)}
	ErrTypeParse        = Err{Code: ErrCodeTypeParse, Cause: errors.New(`type parse failure`)}
	ErrQuery            = Err{Code: ErrCodeQuery, Cause: errors.New(`query failure`)}
	ErrInternal         = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}
	msg := `[pgb]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != `` {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func errInvalid(while string, format string, args ...any) Err {
	return Err{Code: ErrCodeInvalidInput, While: while, Cause: fmt.Errorf(format, args...)}
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

/*
Must be deferred. Converts a panic into an error. Non-error panics become
`ErrInternal`.
*/
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	*ptr = Err{Code: ErrCodeInternal, Cause: fmt.Errorf(`unexpected panic: %v`, val)}
}
