package fpdb

import (
	"math"
	"strconv"
)

const (
	listDelim = `, `
	nullText  = `NULL`
)

/*
Formats a single value the way a bare `?` marker renders it, or the way `?#`
renders it when `ident` is true. Rules, in priority order:

	* Null: `NULL`.
	* Bool: `1` or `0`.
	* Int, Float: decimal text. Floats never use the exponent notation.
	* Str containing a numeric literal: the text as-is, unquoted.
	* Other Str: enclosed in `ValueQuote`, or `IdentQuote` when `ident` is
	  true. No escaping is applied to the text; quote characters inside the
	  text are passed through.

Composite values produce an error wrapping `ErrWrongType`.
*/
func (self Builder) FormatScalar(val Value, ident bool) (_ string, err error) {
	defer rec(&err)
	return string(self.appendScalar(nil, val, ident)), nil
}

/*
Formats a composite value the way `?a` renders it, or the way `?#` renders it
when `ident` is true:

	* Seq: elements formatted via `FormatScalar`, comma-separated.
	* Map, `ident` false: "key = value" pairs, comma-separated. When the value
	  is itself composite, renders "key IN (values)" instead. Keys are formatted
	  as identifiers.
	* Map, `ident` true: only the keys, formatted as identifiers.

Scalars and nested composites inside sequences produce an error wrapping
`ErrWrongType`.
*/
func (self Builder) FormatArray(val Value, ident bool) (_ string, err error) {
	defer rec(&err)
	return string(self.appendArray(nil, val, ident)), nil
}

func (self Builder) appendScalar(buf []byte, val Value, ident bool) []byte {
	switch val.kind {
	case KindNull:
		return append(buf, nullText...)
	case KindBool:
		return appendBool(buf, val.Bool())
	case KindInt:
		return strconv.AppendInt(buf, val.num, 10)
	case KindFloat:
		return appendFloat(buf, val.flo)
	case KindStr:
		if isNumeric(val.str) {
			return append(buf, val.str...)
		}
		if ident {
			return appendEnclosed(buf, self.IdentQuote, val.str)
		}
		return appendEnclosed(buf, self.ValueQuote, val.str)
	case KindSkip:
		panic(errArgument(`formatting scalar`, ErrSkipOutsideCondition))
	default:
		panic(errWrongType(`formatting scalar`, `scalar`, val))
	}
}

func (self Builder) appendArray(buf []byte, val Value, ident bool) []byte {
	switch val.kind {
	case KindSeq:
		return self.appendList(buf, val, ident)
	case KindMap:
		if ident {
			return self.appendKeys(buf, val)
		}
		return self.appendPairs(buf, val)
	case KindSkip:
		panic(errArgument(`formatting array`, ErrSkipOutsideCondition))
	default:
		panic(errWrongType(`formatting array`, `array`, val))
	}
}

// Used for both sequences and nested collections in "IN" clauses.
func (self Builder) appendList(buf []byte, val Value, ident bool) []byte {
	for ind, elem := range val.vals {
		if ind > 0 {
			buf = append(buf, listDelim...)
		}
		buf = self.appendScalar(buf, elem, ident)
	}
	return buf
}

func (self Builder) appendKeys(buf []byte, val Value) []byte {
	for ind, key := range val.keys {
		if ind > 0 {
			buf = append(buf, listDelim...)
		}
		buf = self.appendScalar(buf, Str(key), true)
	}
	return buf
}

func (self Builder) appendPairs(buf []byte, val Value) []byte {
	for ind, key := range val.keys {
		if ind > 0 {
			buf = append(buf, listDelim...)
		}
		buf = self.appendScalar(buf, Str(key), true)

		elem := val.vals[ind]
		if elem.IsComposite() {
			buf = append(buf, ` IN (`...)
			buf = self.appendList(buf, elem, false)
			buf = append(buf, `)`...)
		} else {
			buf = append(buf, ` = `...)
			buf = self.appendScalar(buf, elem, false)
		}
	}
	return buf
}

// Rendering for `?d`.
func (self Builder) appendIntCast(buf []byte, val Value) []byte {
	switch val.kind {
	case KindNull:
		return append(buf, nullText...)
	case KindBool:
		return appendBool(buf, val.Bool())
	case KindInt:
		return strconv.AppendInt(buf, val.num, 10)
	case KindFloat:
		return strconv.AppendInt(buf, floatToInt(val.flo), 10)
	case KindStr:
		if !isNumeric(val.str) {
			panic(errWrongType(`formatting integer`, `numeric string`, val))
		}
		text := trimWhitespace(val.str)
		num, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return strconv.AppendInt(buf, num, 10)
		}
		return strconv.AppendInt(buf, floatToInt(parseFloat(text)), 10)
	default:
		panic(errWrongType(`formatting integer`, `integer`, val))
	}
}

// Rendering for `?f`.
func (self Builder) appendFloatCast(buf []byte, val Value) []byte {
	switch val.kind {
	case KindNull:
		return append(buf, nullText...)
	case KindBool:
		return appendBool(buf, val.Bool())
	case KindInt:
		return appendFloat(buf, float64(val.num))
	case KindFloat:
		return appendFloat(buf, val.flo)
	case KindStr:
		if !isNumeric(val.str) {
			panic(errWrongType(`formatting float`, `numeric string`, val))
		}
		return appendFloat(buf, parseFloat(trimWhitespace(val.str)))
	default:
		panic(errWrongType(`formatting float`, `float`, val))
	}
}

func appendBool(buf []byte, val bool) []byte {
	if val {
		return append(buf, '1')
	}
	return append(buf, '0')
}

func appendFloat(buf []byte, val float64) []byte {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		panic(errWrongType(`formatting float`, `finite number`, Float(val)))
	}
	return strconv.AppendFloat(buf, val, 'f', -1, 64)
}

func appendEnclosed(buf []byte, quote, text string) []byte {
	buf = append(buf, quote...)
	buf = append(buf, text...)
	buf = append(buf, quote...)
	return buf
}

func floatToInt(val float64) int64 {
	val = math.Trunc(val)
	if math.IsNaN(val) || val < math.MinInt64 || val >= math.MaxInt64 {
		panic(errWrongType(`formatting integer`, `number in integer range`, Float(val)))
	}
	return int64(val)
}

// Input must already pass `isNumeric`.
func parseFloat(text string) float64 {
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		panic(errWrongType(`parsing numeric string`, `finite number`, Str(text)))
	}
	return val
}

/*
Reports whether the text is a decimal numeric literal: optional surrounding
whitespace, optional sign, digits with an optional fraction, and an optional
exponent. At least one mantissa digit is required. Hexadecimal, binary,
underscores, "Inf" and "NaN" are not numeric.
*/
func isNumeric(src string) bool {
	src = trimWhitespace(src)
	ind := 0
	size := len(src)

	if ind < size && charsetSign.has(src[ind]) {
		ind++
	}

	digits := 0
	for ind < size && charsetDigitDec.has(src[ind]) {
		ind++
		digits++
	}
	if ind < size && src[ind] == '.' {
		ind++
		for ind < size && charsetDigitDec.has(src[ind]) {
			ind++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if ind < size && charsetExponent.has(src[ind]) {
		ind++
		if ind < size && charsetSign.has(src[ind]) {
			ind++
		}
		exp := 0
		for ind < size && charsetDigitDec.has(src[ind]) {
			ind++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return ind == size
}

func trimWhitespace(src string) string {
	for len(src) > 0 && charsetWhitespace.has(src[0]) {
		src = src[1:]
	}
	for len(src) > 0 && charsetWhitespace.has(src[len(src)-1]) {
		src = src[:len(src)-1]
	}
	return src
}
