package fpdb

import (
	"database/sql"
	"math"
	"testing"
	"time"
)

type Base struct {
	Id      int64     `db:"id"`
	Created time.Time `db:"created_at"`
}

type testUser struct {
	Base
	Name     string  `db:"name"`
	Email    *string `db:"email"`
	Block    bool    `db:"block,omitempty"`
	Untagged string
	Ignored  string `db:"-"`
}

func Test_ValueOf_scalars(t *testing.T) {
	eq(t, Null(), valueOfOk(t, nil))
	eq(t, Bool(true), valueOfOk(t, true))
	eq(t, Int(-10), valueOfOk(t, -10))
	eq(t, Int(10), valueOfOk(t, int8(10)))
	eq(t, Int(10), valueOfOk(t, uint16(10)))
	eq(t, Int(math.MaxInt64), valueOfOk(t, uint64(math.MaxInt64)))
	eq(t, Str(`18446744073709551615`), valueOfOk(t, uint64(math.MaxUint64)))
	eq(t, Float(1.5), valueOfOk(t, float32(1.5)))
	eq(t, Str(`one`), valueOfOk(t, `one`))
	eq(t, Str(`bytes`), valueOfOk(t, []byte(`bytes`)))
	eq(t, Str(`2024-01-02 03:04:05`), valueOfOk(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	eq(t, Str(`2024-01-02 03:04:05.5`), valueOfOk(t, time.Date(2024, 1, 2, 3, 4, 5, 5e8, time.UTC)))
	eq(t, Skip(), valueOfOk(t, Skip()))

	t.Run(`pointers`, func(t *testing.T) {
		str := `one`
		eq(t, Str(`one`), valueOfOk(t, &str))
		eq(t, Null(), valueOfOk(t, (*string)(nil)))
	})

	t.Run(`driver.Valuer`, func(t *testing.T) {
		eq(t, Null(), valueOfOk(t, sql.NullString{}))
		eq(t, Str(`one`), valueOfOk(t, sql.NullString{String: `one`, Valid: true}))
		eq(t, Int(7), valueOfOk(t, sql.NullInt64{Int64: 7, Valid: true}))
		eq(t, Null(), valueOfOk(t, (*sql.NullString)(nil)))
	})
}

func Test_ValueOf_composites(t *testing.T) {
	eq(t, ints(1, 2, 3), valueOfOk(t, []int{1, 2, 3}))
	eq(t, strs(`a`, `b`), valueOfOk(t, [2]string{`a`, `b`}))
	eq(t, Seq(Int(1), Str(`a`), Null()), valueOfOk(t, list{1, `a`, nil}))
	eq(t, Null(), valueOfOk(t, []int(nil)))
	eq(t, Seq(), valueOfOk(t, []int{}))

	t.Run(`maps are sorted by key`, func(t *testing.T) {
		eq(
			t,
			Map(Pair(`a`, Int(1)), Pair(`b`, Int(2)), Pair(`c`, ints(3))),
			valueOfOk(t, map[string]any{`c`: []int{3}, `b`: 2, `a`: 1}),
		)
		eq(t, Map(Pair(`1`, Str(`x`))), valueOfOk(t, map[int]string{1: `x`}))
		eq(
			t,
			Map(Pair(`-3`, Str(`c`)), Pair(`2`, Str(`a`)), Pair(`10`, Str(`b`))),
			valueOfOk(t, map[int]string{2: `a`, 10: `b`, -3: `c`}),
		)
		eq(
			t,
			Map(Pair(`9`, Int(1)), Pair(`100`, Int(2))),
			valueOfOk(t, map[uint8]int{100: 2, 9: 1}),
		)
		eq(t, `2 = 'a', 10 = 'b'`, build(t, `?a`, map[int]string{10: `b`, 2: `a`}))
		eq(t, Null(), valueOfOk(t, map[string]int(nil)))
	})

	t.Run(`structs use db tags in field order`, func(t *testing.T) {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		user := testUser{
			Base:     Base{Id: 10, Created: created},
			Name:     `Jack`,
			Block:    true,
			Untagged: `untagged`,
			Ignored:  `ignored`,
		}

		exp := Map(
			Pair(`id`, Int(10)),
			Pair(`created_at`, Str(`2024-01-02 03:04:05`)),
			Pair(`name`, Str(`Jack`)),
			Pair(`email`, Null()),
			Pair(`block`, Bool(true)),
		)

		eq(t, exp, valueOfOk(t, user))
		eq(t, exp, valueOfOk(t, &user))
		eq(t, Null(), valueOfOk(t, (*testUser)(nil)))
	})
}

func Test_ValueOf_unsupported(t *testing.T) {
	_, err := ValueOf(make(chan int))
	errs(t, ErrWrongType, `unsupported type "chan int"`, err)

	_, err = ValueOf(func() {})
	errs(t, ErrType, `converting argument`, err)

	_, err = ValueOf(map[bool]int{true: 1})
	errs(t, ErrWrongType, `converting mapping key`, err)

	_, err = BuildQuery(`SELECT ?`, make(chan int))
	errs(t, ErrWrongType, `unsupported type`, err)
}

func Test_BuildQuery_struct(t *testing.T) {
	email := `jack@example.com`
	user := testUser{
		Base:  Base{Id: 10},
		Name:  `Jack`,
		Email: &email,
	}

	eq(
		t,
		"SELECT `id`, `created_at`, `name`, `email`, `block` FROM users",
		build(t, `SELECT ?# FROM users`, user),
	)

	eq(
		t,
		"UPDATE users SET `name` = 'Jack', `email` = 'jack@example.com' WHERE id = 10",
		build(t, `UPDATE users SET ?a WHERE id = ?d`, struct {
			Name  string  `db:"name"`
			Email *string `db:"email"`
		}{user.Name, user.Email}, user.Id),
	)
}

func Test_Value(t *testing.T) {
	eq(t, KindNull, Value{}.Kind())
	eq(t, true, Value{}.IsNull())
	eq(t, true, Skip().IsSkip())
	eq(t, false, Null().IsSkip())
	eq(t, true, ints().IsComposite())
	eq(t, true, Map().IsComposite())
	eq(t, false, Str(`a`).IsComposite())

	val := Map(Pair(`one`, Int(1)), Pair(`two`, Str(`2`)))
	eq(t, 2, val.Len())
	eq(t, `two`, val.Key(1))
	eq(t, Str(`2`), val.Index(1))
	eq(t, `{"one": 1 "two": "2"}`, val.String())
	eq(t, `[1 null true]`, Seq(Int(1), Null(), Bool(true)).String())

	t.Run(`constructors copy input`, func(t *testing.T) {
		src := []Value{Int(1)}
		val := Seq(src...)
		src[0] = Int(2)
		eq(t, Int(1), val.Index(0))
	})

	eq(t, `integer`, KindInt.String())
	eq(t, `mapping`, KindMap.String())
	eq(t, `unknown`, Kind(255).String())
}

func Test_Cursor(t *testing.T) {
	cursor := NewCursor([]Value{Int(1), Int(2)})
	eq(t, 2, cursor.Len())

	val, err := cursor.Next()
	noErr(t, err)
	eq(t, Int(1), val)
	eq(t, 1, cursor.Pos())

	errs(t, ErrRedundantArguments, `1 of 2 arguments unused`, cursor.Done())

	val, err = cursor.Next()
	noErr(t, err)
	eq(t, Int(2), val)
	noErr(t, cursor.Done())

	_, err = cursor.Next()
	errs(t, ErrInsufficientArguments, `marker #3 has no argument`, err)
	eq(t, 2, cursor.Pos())
}

func Test_cache(t *testing.T) {
	PurgeCache()

	eq(t, `SELECT 1`, build(t, `SELECT ?{ AND ?}`, 1, Skip()))
	eq(t, `SELECT 1 AND 2`, build(t, `SELECT ?{ AND ?}`, 1, 2))
	eq(t, 1, fragmentCache.Len())

	_, err := BuildQuery(`SELECT {`)
	errs(t, ErrUnterminatedCondition, `unterminated`, err)
	eq(t, 1, fragmentCache.Len())

	bui := New()
	bui.EscapeChar = '\\'
	eq(t, `SELECT 1`, buildWith(t, bui, `SELECT ?{ AND ?}`, 1, Skip()))
	eq(t, 2, fragmentCache.Len())
}
