package fpdb

import (
	"database/sql/driver"
	"fmt"
	r "reflect"
	"sort"
	"strconv"
	"time"

	"github.com/mitranim/refut"
)

// Layout used for `time.Time` arguments. Matches MySQL `DATETIME` literals.
const TimeLayout = `2006-01-02 15:04:05.999999`

// Variant of `ValueOf` that panics on error.
func TryValueOf(src any) Value { return try1(ValueOf(src)) }

/*
Converts an arbitrary Go value into a `Value`. Supports, in this order of
priority:

	* `nil` and nil pointers, maps, slices, interfaces: `Null`.
	* `Value`: as-is.
	* `driver.Valuer`: converts the result of `.Value()`.
	* `time.Time`: `Str` formatted with `TimeLayout`.
	* Bools, integers, floats, strings.
	* Unsigned integers above the `int64` range: numeric `Str`.
	* `[]byte` and its aliases: `Str`.
	* Slices and arrays: `Seq`.
	* Maps with string or integer keys: `Map` with keys in ascending order,
	  numeric for integer keys, since Go maps have no insertion order.
	* Structs: `Map` of fields with a "db" tag, in field order. Embedded structs
	  are flattened.

For other types, returns an error.
*/
func ValueOf(src any) (out Value, err error) {
	defer rec(&err)
	return valueOf(src), nil
}

func valueOf(src any) Value {
	if src == nil {
		return Null()
	}

	switch src := src.(type) {
	case Value:
		return src
	case time.Time:
		return Str(src.Format(TimeLayout))
	case driver.Valuer:
		if refut.IsNil(src) {
			return Null()
		}
		val, err := src.Value()
		if err != nil {
			panic(ErrType.while(`converting driver.Valuer`).because(err))
		}
		return valueOf(val)
	}

	return valueOfRval(r.ValueOf(src))
}

func valueOfRval(rval r.Value) Value {
	switch rval.Kind() {
	case r.Invalid:
		return Null()

	case r.Bool:
		return Bool(rval.Bool())

	case r.Int8, r.Int16, r.Int32, r.Int64, r.Int:
		return Int(rval.Int())

	case r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uint, r.Uintptr:
		val := rval.Uint()
		if val > 1<<63-1 {
			return Str(strconv.FormatUint(val, 10))
		}
		return Int(int64(val))

	case r.Float32, r.Float64:
		return Float(rval.Float())

	case r.String:
		return Str(rval.String())

	case r.Ptr, r.Interface:
		if rval.IsNil() {
			return Null()
		}
		if rval.CanInterface() {
			return valueOf(rval.Elem().Interface())
		}
		return valueOfRval(rval.Elem())

	case r.Slice:
		if rval.IsNil() {
			return Null()
		}
		if rval.Type().Elem().Kind() == r.Uint8 {
			return Str(string(rval.Bytes()))
		}
		return seqOfRval(rval)

	case r.Array:
		return seqOfRval(rval)

	case r.Map:
		if rval.IsNil() {
			return Null()
		}
		return mapOfRval(rval)

	case r.Struct:
		return structOfRval(rval)

	default:
		panic(errUnsupportedType(`converting argument`, rval.Type()))
	}
}

func seqOfRval(rval r.Value) Value {
	vals := make([]Value, rval.Len())
	for ind := range vals {
		vals[ind] = valueOfElem(rval.Index(ind))
	}
	return Value{kind: KindSeq, vals: vals}
}

func mapOfRval(rval r.Value) Value {
	keys := rval.MapKeys()
	sort.Slice(keys, func(one, two int) bool {
		return mapKeyLess(keys[one], keys[two])
	})

	pairs := make([]KeyVal, len(keys))
	for ind, key := range keys {
		pairs[ind] = KeyVal{mapKeyString(key), valueOfElem(rval.MapIndex(key))}
	}
	return Map(pairs...)
}

// Integer keys compare numerically, string keys lexically.
func mapKeyLess(one, two r.Value) bool {
	switch one.Kind() {
	case r.Int8, r.Int16, r.Int32, r.Int64, r.Int:
		return one.Int() < two.Int()
	case r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uint:
		return one.Uint() < two.Uint()
	case r.String:
		return one.String() < two.String()
	default:
		panic(errUnsupportedType(`converting mapping key`, one.Type()))
	}
}

func mapKeyString(key r.Value) string {
	switch key.Kind() {
	case r.String:
		return key.String()
	case r.Int8, r.Int16, r.Int32, r.Int64, r.Int:
		return strconv.FormatInt(key.Int(), 10)
	case r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uint:
		return strconv.FormatUint(key.Uint(), 10)
	default:
		panic(errUnsupportedType(`converting mapping key`, key.Type()))
	}
}

func structOfRval(rval r.Value) Value {
	out := Map()

	err := refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		if !isPublic(sfield.PkgPath) {
			return nil
		}
		colName := sfieldColumnName(sfield)
		if colName == "" {
			return nil
		}
		out.set(colName, valueOfElem(rval))
		return nil
	})
	try(err)

	return out
}

func valueOfElem(rval r.Value) Value {
	if rval.CanInterface() {
		return valueOf(rval.Interface())
	}
	return valueOfRval(rval)
}

/*
Column name from the "db" tag, following the JSON convention of eliding
anything after a comma and treating "-" as a non-name.
*/
func sfieldColumnName(sfield r.StructField) string {
	return refut.TagIdent(sfield.Tag.Get(TagNameDb))
}

func isPublic(pkgPath string) bool { return pkgPath == `` }

func errUnsupportedType(while string, typ r.Type) Err {
	return Err{
		Code:  ErrCodeType,
		While: while,
		Cause: fmt.Errorf(`%w: unsupported type %q`, ErrWrongType, typ),
	}
}
