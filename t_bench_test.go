package fpdb

import "testing"

const benchSrc = `SELECT name FROM users WHERE ?# IN (?a){ AND block = ?d}{ AND email = ?} ORDER BY ?#`

var benchArgs = list{`user_id`, []int{1, 2, 3, 4, 5}, Skip(), `jack@example.com`, []string{`name`, `id`}}

var benchVals = func() []Value {
	out := make([]Value, len(benchArgs))
	for ind, arg := range benchArgs {
		out[ind] = TryValueOf(arg)
	}
	return out
}()

func Benchmark_BuildQuery(b *testing.B) {
	for range counter(b.N) {
		benchBuildQuery()
	}
}

//go:noinline
func benchBuildQuery() {
	try1(BuildQuery(benchSrc, benchArgs...))
}

func Benchmark_Build(b *testing.B) {
	for range counter(b.N) {
		benchBuild(Default)
	}
}

func Benchmark_Build_no_cache(b *testing.B) {
	bui := New()
	bui.NoCache = true

	for range counter(b.N) {
		benchBuild(bui)
	}
}

func Benchmark_Build_skip_quoted(b *testing.B) {
	bui := New()
	bui.SkipQuoted = true

	for range counter(b.N) {
		benchBuild(bui)
	}
}

//go:noinline
func benchBuild(bui Builder) {
	try1(bui.Build(benchSrc, benchVals))
}

func Benchmark_Tokenize(b *testing.B) {
	for range counter(b.N) {
		benchTokenize()
	}
}

//go:noinline
func benchTokenize() {
	try1(Tokenize(benchSrc))
}

func Benchmark_ValueOf_struct(b *testing.B) {
	val := testUser{Base: Base{Id: 10}, Name: `Jack`}

	for range counter(b.N) {
		benchValueOf(val)
	}
}

//go:noinline
func benchValueOf(src any) {
	try1(ValueOf(src))
}
