package fpdb

import (
	"strconv"
	"strings"
)

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindSeq
	KindMap
	KindSkip
)

// Part of `Value`. Enum of argument variants.
type Kind byte

// Implement `fmt.Stringer`. Used in type error messages.
func (self Kind) String() string {
	switch self {
	case KindNull:
		return `null`
	case KindBool:
		return `boolean`
	case KindInt:
		return `integer`
	case KindFloat:
		return `float`
	case KindStr:
		return `string`
	case KindSeq:
		return `sequence`
	case KindMap:
		return `mapping`
	case KindSkip:
		return `skip`
	default:
		return `unknown`
	}
}

/*
Closed variant of template arguments. The zero value is `Null()`. Construct
values with `Null`, `Bool`, `Int`, `Float`, `Str`, `Seq`, `Map`, or convert
arbitrary Go values via `ValueOf`. `Builder.BuildQuery` converts its arguments
automatically.

Values are immutable; constructors copy their inputs.
*/
type Value struct {
	kind Kind
	num  int64
	flo  float64
	str  string
	vals []Value
	keys []string
}

// Key-value pair used to construct mappings. See `Map` and `Pair`.
type KeyVal struct {
	Key string
	Val Value
}

// Shortcut for `KeyVal{key, val}`.
func Pair(key string, val Value) KeyVal { return KeyVal{key, val} }

// SQL null.
func Null() Value { return Value{} }

func Bool(val bool) Value {
	if val {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

func Int(val int64) Value { return Value{kind: KindInt, num: val} }

func Float(val float64) Value { return Value{kind: KindFloat, flo: val} }

func Str(val string) Value { return Value{kind: KindStr, str: val} }

// Sequential list of values. Renders as a comma-separated list.
func Seq(vals ...Value) Value {
	return Value{kind: KindSeq, vals: append([]Value{}, vals...)}
}

/*
Ordered mapping of string keys to values. Insertion order is preserved. When a
key repeats, the later value replaces the earlier one in the earlier position.
*/
func Map(pairs ...KeyVal) Value {
	out := Value{
		kind: KindMap,
		keys: make([]string, 0, len(pairs)),
		vals: make([]Value, 0, len(pairs)),
	}
	for _, pair := range pairs {
		out.set(pair.Key, pair.Val)
	}
	return out
}

/*
Returns the skip sentinel. When a conditional block consumes this value for any
of its markers, the entire block is omitted from the output. Compared by kind,
so it can never collide with an ordinary argument.
*/
func Skip() Value { return Value{kind: KindSkip} }

func (self Value) Kind() Kind { return self.kind }

func (self Value) IsNull() bool { return self.kind == KindNull }

func (self Value) IsSkip() bool { return self.kind == KindSkip }

// True for `Seq` and `Map` values.
func (self Value) IsComposite() bool {
	return self.kind == KindSeq || self.kind == KindMap
}

// Number of elements in a sequence or pairs in a mapping. Zero for scalars.
func (self Value) Len() int { return len(self.vals) }

// Element of a sequence, or the value of a mapping pair, by position.
func (self Value) Index(ind int) Value { return self.vals[ind] }

// Key of a mapping pair by position. Panics for non-mappings.
func (self Value) Key(ind int) string { return self.keys[ind] }

func (self Value) Bool() bool { return self.num != 0 }

func (self Value) Int() int64 { return self.num }

func (self Value) Float() float64 { return self.flo }

func (self Value) Str() string { return self.str }

// Implement `fmt.Stringer` for debug purposes. Not SQL.
func (self Value) String() string {
	switch self.kind {
	case KindNull:
		return `null`
	case KindBool:
		return strconv.FormatBool(self.Bool())
	case KindInt:
		return strconv.FormatInt(self.num, 10)
	case KindFloat:
		return strconv.FormatFloat(self.flo, 'f', -1, 64)
	case KindStr:
		return strconv.Quote(self.str)
	case KindSeq:
		var buf strings.Builder
		buf.WriteString(`[`)
		for ind, val := range self.vals {
			if ind > 0 {
				buf.WriteString(` `)
			}
			buf.WriteString(val.String())
		}
		buf.WriteString(`]`)
		return buf.String()
	case KindMap:
		var buf strings.Builder
		buf.WriteString(`{`)
		for ind, val := range self.vals {
			if ind > 0 {
				buf.WriteString(` `)
			}
			buf.WriteString(strconv.Quote(self.keys[ind]))
			buf.WriteString(`: `)
			buf.WriteString(val.String())
		}
		buf.WriteString(`}`)
		return buf.String()
	case KindSkip:
		return `skip`
	default:
		return ``
	}
}

func (self *Value) set(key string, val Value) {
	for ind, prev := range self.keys {
		if prev == key {
			self.vals[ind] = val
			return
		}
	}
	self.keys = append(self.keys, key)
	self.vals = append(self.vals, val)
}
