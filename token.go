package calc

import (
	"strconv"
)

// Token is one lexical unit of calculator input. The zero Token is invalid.
// Tokens are compared with ==.
type Token struct {
	kind Kind
	num  float64
	name string
	sym  rune
}

// Kind identifies the variant of a Token.
type Kind int8

const (
	kindNone Kind = iota
	// KindNumber is a floating-point literal.
	KindNumber
	// KindIdent is a variable name.
	KindIdent
	// KindLet is the declaration keyword.
	KindLet
	// KindSymbol is a single-character operator or punctuation.
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case kindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindIdent:
		return "Ident"
	case KindLet:
		return "Let"
	case KindSymbol:
		return "Symbol"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Symbols contains the runes which lex as single-character symbols. Print is
// the statement terminator and Quit ends a session.
const Symbols = "+-*/%()=;q"

const (
	Print = ';'
	Quit  = 'q'
)

// LetKeyword is the reserved word that begins a declaration.
const LetKeyword = "let"

// Number creates a number token.
func Number(v float64) Token {
	return Token{kind: KindNumber, num: v}
}

// Ident creates an identifier token.
func Ident(name string) Token {
	return Token{kind: KindIdent, name: name}
}

// Keyword creates a declaration keyword token.
func Keyword() Token {
	return Token{kind: KindLet}
}

// Symbol creates a symbol token. Panics if c is not in Symbols.
func Symbol(c rune) Token {
	if !isSymbol(c) {
		panic("calc: invalid symbol " + strconv.QuoteRune(c))
	}
	return Token{kind: KindSymbol, sym: c}
}

func isSymbol(c rune) bool {
	for _, r := range Symbols {
		if r == c {
			return true
		}
	}
	return false
}

// Kind returns the token's variant.
func (t Token) Kind() Kind {
	return t.kind
}

// Value returns the value of a number token and false for any other kind.
func (t Token) Value() (float64, bool) {
	return t.num, t.kind == KindNumber
}

// Name returns the name of an identifier token and false for any other kind.
func (t Token) Name() (string, bool) {
	return t.name, t.kind == KindIdent
}

// Rune returns the character of a symbol token and false for any other kind.
func (t Token) Rune() (rune, bool) {
	return t.sym, t.kind == KindSymbol
}

// is reports whether t is the symbol c.
func (t Token) is(c rune) bool {
	return t.kind == KindSymbol && t.sym == c
}

// text is the token as it would appear in input, for error messages.
func (t Token) text() string {
	switch t.kind {
	case KindNumber:
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	case KindIdent:
		return t.name
	case KindLet:
		return LetKeyword
	case KindSymbol:
		return string(t.sym)
	default:
		return ""
	}
}

func (t Token) String() string {
	return t.kind.String() + ":" + t.text()
}
