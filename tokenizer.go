package fpdb

const (
	conditionOpen  = '{'
	conditionClose = '}'
)

/*
Conditional-block tokenizer used internally by `Builder` to split a template
into fragments. Text between `{` and `}` becomes a conditional fragment, the
rest becomes unconditional fragments. A delimiter immediately preceded by
`Escape` is kept as literal text, and the escape character is dropped. An
escape character before any other character is ordinary text. Zero `Escape`
disables escaping.

Goals:

	* Single pass, fragments in source order.

	* Validation: conditional blocks must be closed and can't be nested.

Non-goals:

	* Understanding SQL. Braces inside quoted strings or comments still delimit
	  conditional blocks and need escaping.

Operates on bytes. Delimiters and the escape character are ASCII, which never
occur inside multi-byte UTF-8 sequences.
*/
type Tokenizer struct {
	Source string
	Escape byte
	cursor int
	depth  int
	open   int
}

/*
Returns the next non-empty fragment. When the tokenizer reaches the end, this
returns an empty `Fragment{}`. Call `Fragment.IsInvalid` to detect the end.

Panics with an `Err` of code `ErrCodeSyntax` when a conditional block is
nested, unmatched, or unterminated.
*/
func (self *Tokenizer) Next() Fragment {
	var buf []byte

	for self.more() {
		char := self.headByte()

		switch {
		case self.isEscaped():
			buf = append(buf, self.Source[self.cursor+1])
			self.skipBytes(2)

		case char == conditionOpen:
			if self.depth > 0 {
				panic(errSyntax(`tokenizing template`, ErrNestedCondition, self.cursor))
			}
			self.open = self.cursor
			self.depth = 1
			self.skipBytes(1)
			if len(buf) > 0 {
				return Fragment{Text: string(buf)}
			}

		case char == conditionClose:
			if self.depth == 0 {
				panic(errSyntax(`tokenizing template`, ErrUnmatchedBraces, self.cursor))
			}
			self.depth = 0
			self.skipBytes(1)
			if len(buf) > 0 {
				return Fragment{Text: string(buf), Conditional: true}
			}

		default:
			buf = append(buf, char)
			self.skipBytes(1)
		}
	}

	if self.depth > 0 {
		panic(errSyntax(`tokenizing template`, ErrUnterminatedCondition, self.open))
	}
	if len(buf) > 0 {
		return Fragment{Text: string(buf)}
	}
	return Fragment{}
}

func (self *Tokenizer) isEscaped() bool {
	if self.Escape == 0 || self.headByte() != self.Escape || self.cursor+1 >= len(self.Source) {
		return false
	}
	next := self.Source[self.cursor+1]
	return next == conditionOpen || next == conditionClose
}

func (self *Tokenizer) skipBytes(val int) {
	self.cursor += val
}

func (self *Tokenizer) more() bool {
	return self.cursor < len(self.Source)
}

func (self *Tokenizer) headByte() byte {
	return self.Source[self.cursor]
}

// Represents a chunk of template text produced by `Tokenizer`.
type Fragment struct {
	Text        string
	Conditional bool
}

/*
True if the fragment is empty. This is used to detect end of iteration when
calling `(*Tokenizer).Next`, which never emits empty fragments.
*/
func (self Fragment) IsInvalid() bool { return self.Text == `` }

/*
Implement `fmt.Stringer` for debug purposes. Conditional fragments are wrapped
in braces. Literal braces resolved from escapes are not re-escaped.
*/
func (self Fragment) String() string {
	if self.Conditional {
		return string(conditionOpen) + self.Text + string(conditionClose)
	}
	return self.Text
}

func tokenize(src string, escape byte) []Fragment {
	tokenizer := Tokenizer{Source: src, Escape: escape}
	var out []Fragment
	for {
		frag := tokenizer.Next()
		if frag.IsInvalid() {
			return out
		}
		out = append(out, frag)
	}
}
