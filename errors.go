package fpdb

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
	ErrCodeUnknown  ErrCode = ""
	ErrCodeSyntax   ErrCode = "Syntax"
	ErrCodeArgument ErrCode = "Argument"
	ErrCodeType     ErrCode = "Type"
)

/*
Use blank error variables to detect error categories:

	if errors.Is(err, fpdb.ErrSyntax) {
		// Malformed template.
	}

Or the specific causes:

	if errors.Is(err, fpdb.ErrInsufficientArguments) {
		// Not enough arguments for the markers.
	}

Note that errors returned by this package can't be compared via `==` because
they include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrSyntax   Err = Err{Code: ErrCodeSyntax, Cause: errors.New(`syntax error`)}
	ErrArgument Err = Err{Code: ErrCodeArgument, Cause: errors.New(`argument error`)}
	ErrType     Err = Err{Code: ErrCodeType, Cause: errors.New(`type error`)}
)

var (
	ErrNestedCondition       = errors.New(`nested conditional expression`)
	ErrUnmatchedBraces       = errors.New(`unmatched braces`)
	ErrUnterminatedCondition = errors.New(`unterminated conditional expression`)
	ErrInsufficientArguments = errors.New(`insufficient arguments`)
	ErrRedundantArguments    = errors.New(`redundant arguments`)
	ErrSkipOutsideCondition  = errors.New(`skip marker outside of conditional block`)
	ErrWrongType             = errors.New(`wrong argument type`)
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
		return ""
	}
	msg := `[fpdb]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != "" {
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

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

func errSyntax(while string, cause error, pos int) Err {
	return Err{
		Code:  ErrCodeSyntax,
		While: while,
		Cause: fmt.Errorf(`%w at position %d`, cause, pos),
	}
}

func errArgument(while string, cause error) Err {
	return Err{Code: ErrCodeArgument, While: while, Cause: cause}
}

func errWrongType(while string, exp string, val Value) Err {
	return Err{
		Code:  ErrCodeType,
		While: while,
		Cause: fmt.Errorf(`%w: %v expected, got %v`, ErrWrongType, exp, val.Kind()),
	}
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
Must be deferred. Converts a panic carrying an error into an error assigned to
the pointer. Non-error panics are re-raised.
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

	panic(val)
}
