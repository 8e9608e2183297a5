package fpdb

import (
	"fmt"
	"strings"

	"github.com/mitranim/sqlp"
)

// Part of the text of a fragment. See `splitQuoted`.
type segment struct {
	text     string
	verbatim bool
}

/*
Splits fragment text into segments that may contain markers and segments that
must be copied verbatim: quoted strings, quoted identifiers, line comments and
block comments. Used when `Builder.SkipQuoted` is enabled.

Segments are slices of the source. The tokenizer is only used to locate the
verbatim parts, because it normalizes some other tokens, such as "$01" into
"$1". Verbatim text always starts with a quote or comment prefix, which never
occurs in the text before it, so its first occurrence after the previous
segment is its position in the source.
*/
func splitQuoted(src string) (out []segment) {
	defer recTokenizer(src)

	tokenizer := sqlp.Tokenizer{Source: src}
	var cursor int

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		text := node.String()
		if !isVerbatimText(text) {
			continue
		}

		ind := strings.Index(src[cursor:], text)
		if ind < 0 {
			panic(fmt.Errorf(`verbatim text %q not found after position %d`, text, cursor))
		}

		out = appendSegment(out, src[cursor:cursor+ind], false)
		cursor += ind
		out = appendSegment(out, src[cursor:cursor+len(text)], true)
		cursor += len(text)
	}

	return appendSegment(out, src[cursor:], false)
}

// Merges adjacent segments of the same category, so that a marker and its
// specifier never end up in different segments.
func appendSegment(out []segment, text string, verbatim bool) []segment {
	if text == `` {
		return out
	}
	last := len(out) - 1
	if last >= 0 && out[last].verbatim == verbatim {
		out[last].text += text
		return out
	}
	return append(out, segment{text, verbatim})
}

func isVerbatimText(text string) bool {
	return len(text) > 0 && (charsetQuote.has(text[0]) ||
		strings.HasPrefix(text, commentLinePrefix) ||
		strings.HasPrefix(text, commentBlockPrefix))
}

// Must be deferred. Converts tokenizer panics, such as unterminated quotes,
// into syntax errors.
func recTokenizer(src string) {
	val := recover()
	if val == nil {
		return
	}
	panic(Err{
		Code:  ErrCodeSyntax,
		While: `scanning quoted text`,
		Cause: fmt.Errorf(`%v in %q`, val, src),
	})
}
