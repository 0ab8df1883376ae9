package calc

import (
	"errors"
	"strconv"
)

// ErrPutbackOverflow is the panic value when a token is pushed back while
// another is already pending. It indicates a bug in the grammar, not bad
// input.
var ErrPutbackOverflow = errors.New("calc: putback into a full buffer")

// ErrQuit is returned by Session.Next when the input asks to end the session.
var ErrQuit = errors.New("calc: quit")

// OperandError is an error indicating a token where a number, name, sign, or
// parenthesized expression was expected. It implements InputError.
type OperandError struct {
	// Col is the position of the token.
	Col int
	// Got is the token that was found.
	Got string
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "primary expected, got "+strconv.Quote(err.Got))
}

func (err *OperandError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an open parenthesis without a matching
// close parenthesis. It implements InputError.
type BracketError struct {
	// Col is the position of the token found instead of the close bracket.
	Col int
	// Right is that token.
	Right string
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "')' expected, got "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// DeclarationError is an error indicating a malformed declaration. It
// implements InputError.
type DeclarationError struct {
	// Col is the position of the unexpected token.
	Col int
	// Want is what the declaration needed: "name" or "=".
	Want string
	// Got is the token that was found.
	Got string
}

func (err *DeclarationError) Error() string {
	return errpos(err.Col, err.Want+" expected in declaration, got "+strconv.Quote(err.Got))
}

func (err *DeclarationError) Pos() int {
	return err.Col
}

// DomainError is an error indicating division or remainder by zero. It
// implements InputError.
type DomainError struct {
	// Col is the position of the operator.
	Col int
	// Op is '/' or '%'.
	Op rune
	// X is the dividend.
	X float64
}

func (err *DomainError) Error() string {
	s := "division by zero"
	if err.Op == '%' {
		s = "remainder by zero"
	}
	return errpos(err.Col, s+" ("+strconv.FormatFloat(err.X, 'g', -1, 64)+string(err.Op)+"0)")
}

func (err *DomainError) Pos() int {
	return err.Col
}

// EndError is an error indicating input after a complete statement where
// only one statement was allowed. It implements InputError.
type EndError struct {
	// Col is the position of the extra token.
	Col int
	// Got is the extra token.
	Got string
}

func (err *EndError) Error() string {
	return errpos(err.Col, "end of statement expected, got "+strconv.Quote(err.Got))
}

func (err *EndError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError, and a session can always recover from
// one.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperandError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*DeclarationError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*EndError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*RedeclarationError)(nil)
	_ InputError = (*LexError)(nil)
)
