package fpdb

import (
	r "reflect"
	"strings"
)

/*
Template renderer and its configuration. The zero value has no quote
characters and no escaping; use `New` for the defaults. Methods use value
receivers, so every call works on a snapshot of the configuration. Changing
the fields of one copy never affects calls already in progress on another, and
a `Builder` can be used concurrently.

Template syntax:

	?     scalar: NULL, 1/0 for bools, numbers as-is, other strings quoted
	?d    integer
	?f    float
	?a    sequence as a list, mapping as "key = value" pairs
	?#    identifier or list of identifiers, quoted with `IdentQuote`
	??    literal "?" when `MarkerEscape` is true
	{...} conditional block, omitted when any of its markers receives `Skip()`
	/{ /} literal braces, with the default `EscapeChar`

Markers consume arguments left to right across the whole template, including
markers inside omitted blocks. The number of arguments must match the number
of markers exactly.
*/
type Builder struct {
	// Encloses string values. Default "'".
	ValueQuote string

	// Encloses identifiers. Default "`".
	IdentQuote string

	// Prefix that turns the following "{" or "}" into literal text. Default
	// "/". Zero disables brace escaping.
	EscapeChar byte

	// When true, "??" renders a literal "?" without consuming an argument.
	MarkerEscape bool

	/**
	Optional. Arguments of the same comparable type and equal to this value are
	treated as `Skip()`. Useful when arguments come from a format that can't
	carry the sentinel, such as JSON or YAML.
	*/
	SkipMarker any

	/**
	When true, markers inside quoted strings, quoted identifiers and comments
	are left untouched. Quotes are recognized by SQL rules: a quote inside a
	string is written by doubling it. MySQL backslash escapes are not
	recognized, so in 'a\'b' the string ends after the backslash.
	*/
	SkipQuoted bool

	// When true, templates are tokenized on every call.
	NoCache bool
}

// Returns a `Builder` with default settings.
func New() Builder {
	return Builder{
		ValueQuote:   `'`,
		IdentQuote:   "`",
		EscapeChar:   '/',
		MarkerEscape: true,
	}
}

// Used by the package-level functions.
var Default = New()

// Shortcut for `Default.BuildQuery`.
func BuildQuery(src string, args ...any) (string, error) {
	return Default.BuildQuery(src, args...)
}

// Shortcut for `Default.Tokenize`.
func Tokenize(src string) ([]Fragment, error) {
	return Default.Tokenize(src)
}

// Returns the skip sentinel. Same as the package-level `Skip`.
func (self Builder) Skip() Value { return Skip() }

/*
Renders the template, converting the arguments via `ValueOf`. On error, returns
an empty string and an `Err`; there is never partial output.

	fpdb.BuildQuery(
		`SELECT name FROM users WHERE ?# IN (?a){ AND block = ?d}`,
		`user_id`, []int{1, 2, 3}, fpdb.Skip(),
	)
	// SELECT name FROM users WHERE `user_id` IN (1, 2, 3)
*/
func (self Builder) BuildQuery(src string, args ...any) (_ string, err error) {
	defer rec(&err)

	vals := make([]Value, len(args))
	for ind, arg := range args {
		vals[ind] = self.value(arg)
	}
	return self.build(src, vals), nil
}

// Same as `.BuildQuery` but takes already-converted arguments.
func (self Builder) Build(src string, args []Value) (_ string, err error) {
	defer rec(&err)
	return self.build(src, args), nil
}

// Splits the template into fragments. Doesn't use the cache.
func (self Builder) Tokenize(src string) (_ []Fragment, err error) {
	defer rec(&err)
	return tokenize(src, self.EscapeChar), nil
}

/*
Renders a single fragment, consuming one argument from the cursor for each
marker. Returns an empty string for a conditional fragment that consumed the
skip sentinel. The skip sentinel in an unconditional fragment is an error
wrapping `ErrSkipOutsideCondition`. Doesn't check for leftover arguments; see
`Cursor.Done`.
*/
func (self Builder) Render(frag Fragment, cursor *Cursor) (_ string, err error) {
	defer rec(&err)
	return string(self.appendFragment(nil, frag, cursor)), nil
}

func (self Builder) build(src string, args []Value) string {
	cursor := NewCursor(args)

	var buf []byte
	for _, frag := range self.fragments(src) {
		buf = self.appendFragment(buf, frag, cursor)
	}

	try(cursor.Done())
	return string(buf)
}

func (self Builder) fragments(src string) []Fragment {
	if self.NoCache {
		return tokenize(src, self.EscapeChar)
	}
	return cachedFragments(src, self.EscapeChar)
}

func (self Builder) appendFragment(buf []byte, frag Fragment, cursor *Cursor) []byte {
	start := len(buf)
	ren := renderer{
		Builder: self,
		cursor:  cursor,
		cond:    frag.Conditional,
		buf:     buf,
	}

	if self.SkipQuoted {
		for _, seg := range splitQuoted(frag.Text) {
			if seg.verbatim {
				ren.buf = append(ren.buf, seg.text...)
			} else {
				ren.scan(seg.text)
			}
		}
	} else {
		ren.scan(frag.Text)
	}

	if ren.skipped {
		return ren.buf[:start]
	}
	return ren.buf
}

func (self Builder) value(arg any) Value {
	if self.isSkipMarker(arg) {
		return Skip()
	}
	return valueOf(arg)
}

func (self Builder) isSkipMarker(arg any) bool {
	marker := self.SkipMarker
	if marker == nil || arg == nil {
		return false
	}
	typ := r.TypeOf(arg)
	return typ == r.TypeOf(marker) && typ.Comparable() && arg == marker
}

/*
Renders one fragment. Once the skip sentinel is seen in a conditional
fragment, the remaining markers still consume their arguments, so that later
fragments receive the right ones, but nothing is formatted.
*/
type renderer struct {
	Builder
	cursor  *Cursor
	cond    bool
	skipped bool
	buf     []byte
}

func (self *renderer) scan(src string) {
	for {
		ind := strings.IndexByte(src, markerPrefix)
		if ind < 0 {
			self.buf = append(self.buf, src...)
			return
		}

		self.buf = append(self.buf, src[:ind]...)
		src = src[ind+1:]

		if self.MarkerEscape && len(src) > 0 && src[0] == markerPrefix {
			self.buf = append(self.buf, markerPrefix)
			src = src[1:]
			continue
		}

		var spec byte
		if len(src) > 0 && charsetSpecifier.has(src[0]) {
			spec = src[0]
			src = src[1:]
		}
		self.marker(spec)
	}
}

func (self *renderer) marker(spec byte) {
	val := try1(self.cursor.Next())

	if val.IsSkip() {
		if !self.cond {
			panic(errArgument(`rendering marker`, ErrSkipOutsideCondition))
		}
		self.skipped = true
		return
	}
	if self.skipped {
		return
	}

	switch spec {
	case specifierInt:
		self.buf = self.appendIntCast(self.buf, val)
	case specifierFloat:
		self.buf = self.appendFloatCast(self.buf, val)
	case specifierArray:
		self.buf = self.appendArray(self.buf, val, false)
	case specifierIdentifier:
		if val.IsComposite() {
			self.buf = self.appendArray(self.buf, val, true)
		} else {
			self.buf = self.appendScalar(self.buf, val, true)
		}
	default:
		self.buf = self.appendScalar(self.buf, val, false)
	}
}
