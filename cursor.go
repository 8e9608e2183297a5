package fpdb

import "fmt"

/*
Forward-only cursor over template arguments. One cursor is shared by all
fragments of a single template, so that markers consume arguments in source
order regardless of which fragment they belong to. The cursor never rewinds.
*/
type Cursor struct {
	vals []Value
	pos  int
}

// Creates a cursor over the given arguments. Doesn't copy the slice.
func NewCursor(vals []Value) *Cursor { return &Cursor{vals: vals} }

/*
Returns the next argument and advances the cursor. Returns an error wrapping
`ErrInsufficientArguments` when no arguments remain.
*/
func (self *Cursor) Next() (Value, error) {
	if self.pos >= len(self.vals) {
		return Value{}, errArgument(
			`consuming argument`,
			fmt.Errorf(`%w: marker #%d has no argument`, ErrInsufficientArguments, self.pos+1),
		)
	}
	val := self.vals[self.pos]
	self.pos++
	return val, nil
}

// Number of consumed arguments.
func (self *Cursor) Pos() int { return self.pos }

// Number of arguments not yet consumed.
func (self *Cursor) Len() int { return len(self.vals) - self.pos }

/*
Returns an error wrapping `ErrRedundantArguments` if any arguments remain
unconsumed.
*/
func (self *Cursor) Done() error {
	if self.Len() > 0 {
		return errArgument(
			`finishing query`,
			fmt.Errorf(`%w: %d of %d arguments unused`, ErrRedundantArguments, self.Len(), len(self.vals)),
		)
	}
	return nil
}
