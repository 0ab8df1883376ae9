package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read from src.
	col int
	// pos is the column of the first rune of the last token returned by get.
	pos int
	// p is the pushed token and ppos its position. full indicates whether p
	// is pending.
	p    Token
	ppos int
	full bool
	// ioerr is a read error other than EOF encountered while scanning a
	// number.
	ioerr error
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// putback unreads a token so that it is the next token returned from get.
// Panics with ErrPutbackOverflow if there is already a pushed token.
func (l *lexer) putback(tok Token) {
	if l.full {
		panic(ErrPutbackOverflow)
	}
	l.p = tok
	l.ppos = l.pos
	l.full = true
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// get scans the next token from the input. At the end of the input, the
// result is an empty token with io.EOF.
func (l *lexer) get() (Token, error) {
	if l.full {
		l.full = false
		l.pos = l.ppos
		return l.p, nil
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		l.pos = l.col
		switch {
		case isSymbol(r):
			// Symbols are checked first so that q is never the start of a
			// name.
			return Symbol(r), nil
		case isDigit(r), r == '.':
			l.unreadRune()
			return l.scanNum()
		case unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return Token{}, err
			}
			if s := l.buf.String(); s != LetKeyword {
				return Ident(s), nil
			}
			return Keyword(), nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return Token{}, l.error("")
		}
	}
}

// ignore discards input up to and including the next occurrence of c. A
// pending token is discarded first; if it is the symbol c, no input is read.
func (l *lexer) ignore(c rune) error {
	if l.full {
		l.full = false
		if l.p.is(c) {
			return nil
		}
	}
	for {
		r, err := l.readRune()
		if err != nil {
			return err
		}
		if r == c {
			return nil
		}
	}
}

// next reads one rune while scanning a number. It returns -1 at the end of
// the input or on a read error, which it saves in l.ioerr.
func (l *lexer) next() rune {
	r, err := l.readRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.ioerr = err
		}
		return -1
	}
	return r
}

// back unreads r if it came from the input.
func (l *lexer) back(r rune) {
	if r >= 0 {
		l.unreadRune()
	}
}

// digits scans a run of decimal digits into the buffer and reports whether
// there were any.
func (l *lexer) digits() bool {
	ok := false
	for {
		r := l.next()
		if !isDigit(r) {
			l.back(r)
			return ok
		}
		l.buf.WriteRune(r)
		ok = true
	}
}

// scanNum scans a floating-point literal: digits with an optional fraction
// and an optional exponent. The scan stops at the first rune that cannot
// continue the literal, so "1.5.5" is two numbers.
func (l *lexer) scanNum() (Token, error) {
	dig := l.digits()
	r := l.next()
	if r == '.' {
		l.buf.WriteRune(r)
		if l.digits() {
			dig = true
		}
		r = l.next()
	}
	if !dig {
		l.back(r)
		return Token{}, l.numError()
	}
	if r == 'e' || r == 'E' {
		l.buf.WriteRune(r)
		r = l.next()
		if r == '+' || r == '-' {
			l.buf.WriteRune(r)
			r = l.next()
		}
		if !isDigit(r) {
			l.back(r)
			return Token{}, l.numError()
		}
		l.buf.WriteRune(r)
		l.digits()
		r = l.next()
	}
	l.back(r)
	if err := l.ioerr; err != nil {
		l.ioerr = nil
		return Token{}, err
	}
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// The literal is syntactically valid, so this is a range error.
		return Token{}, l.error("number")
	}
	return Number(v), nil
}

func (l *lexer) numError() error {
	if err := l.ioerr; err != nil {
		l.ioerr = nil
		return err
	}
	return l.error("number")
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// get unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.pos,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered. For a bad token, it is the offending character.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the position of the first rune of the token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "bad token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
