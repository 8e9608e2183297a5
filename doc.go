/*
FPDB: SQL query templating with typed markers and conditional blocks. Oriented
towards writing PLAIN SQL: the template is ordinary SQL text, and markers are
replaced with formatted, quoted literals. Not a SQL parser: the text between
markers is never validated.

Key Features

• Typed markers: "?" for scalars, "?d" for integers, "?f" for floats, "?a" for
lists and "key = value" pairs, "?#" for identifiers.

• Conditional blocks: "{...}" is omitted from the output when any of its
markers receives the `Skip()` sentinel.

• Arguments are consumed left to right across the whole template, including
omitted blocks. Missing or redundant arguments are reported as errors.

• Accepts arbitrary Go values: slices, maps, structs with "db" tags,
`driver.Valuer` and `time.Time` are converted via `ValueOf`.

• Tokenized templates are cached, so repeated calls only scan markers.

• Errors carry a code, a context and a cause, and support `errors.Is`.

Examples

See `BuildQuery()`, `Builder`, `ValueOf()` for examples.
*/
package fpdb
