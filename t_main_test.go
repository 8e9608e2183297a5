package fpdb

import (
	"errors"
	r "reflect"
	"strings"
	"testing"
)

type list = []any

func eq(t testing.TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

func noErr(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf(`unexpected error: %+v`, err)
	}
}

/*
Fails unless the error matches the target via `errors.Is` and its message
contains the given substring.
*/
func errs(t testing.TB, target error, msg string, err error) {
	t.Helper()

	if err == nil {
		t.Fatalf(`expected an error matching %q, found nil`, target)
	}
	if !errors.Is(err, target) {
		t.Fatalf(`expected an error matching %q, found %q`, target, err)
	}
	if !strings.Contains(err.Error(), msg) {
		t.Fatalf(`expected an error containing %q, found %q`, msg, err)
	}
}

func build(t testing.TB, src string, args ...any) string {
	t.Helper()
	out, err := BuildQuery(src, args...)
	noErr(t, err)
	return out
}

func buildWith(t testing.TB, bui Builder, src string, args ...any) string {
	t.Helper()
	out, err := bui.BuildQuery(src, args...)
	noErr(t, err)
	return out
}

func frags(t testing.TB, src string) []Fragment {
	t.Helper()
	out, err := Tokenize(src)
	noErr(t, err)
	return out
}

func scalar(t testing.TB, val Value, ident bool) string {
	t.Helper()
	out, err := New().FormatScalar(val, ident)
	noErr(t, err)
	return out
}

func array(t testing.TB, val Value, ident bool) string {
	t.Helper()
	out, err := New().FormatArray(val, ident)
	noErr(t, err)
	return out
}

func valueOfOk(t testing.TB, src any) Value {
	t.Helper()
	out, err := ValueOf(src)
	noErr(t, err)
	return out
}

func ints(vals ...int64) Value {
	out := make([]Value, len(vals))
	for ind, val := range vals {
		out[ind] = Int(val)
	}
	return Seq(out...)
}

func strs(vals ...string) Value {
	out := make([]Value, len(vals))
	for ind, val := range vals {
		out[ind] = Str(val)
	}
	return Seq(out...)
}

func counter(val int) []struct{} { return make([]struct{}, val) }
