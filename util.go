package fpdb

const (
	TagNameDb = `db`

	markerPrefix        = '?'
	specifierInt        = 'd'
	specifierFloat      = 'f'
	specifierArray      = 'a'
	specifierIdentifier = '#'

	commentLinePrefix  = `--`
	commentBlockPrefix = `/*`
)

var (
	charsetDigitDec   = new(charset).addStr(`0123456789`)
	charsetSign       = new(charset).addStr(`+-`)
	charsetExponent   = new(charset).addStr(`eE`)
	charsetSpace      = new(charset).addStr(" \t\v\f")
	charsetNewline    = new(charset).addStr("\r\n")
	charsetWhitespace = new(charset).addSet(charsetSpace).addSet(charsetNewline)
	charsetQuote      = new(charset).addStr("'\"`")
	charsetSpecifier  = new(charset).addStr(`dfa#`)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}
