package calc

import (
	"errors"
	"io"
	"math"
	"strings"
)

// Statement = Declaration | Expression
// Declaration = 'let' name '=' Expression
// Expression = Term { ('+' | '-') Term }
// Term = Primary { ('*' | '/' | '%') Primary }
// Primary = number | name | '(' Expression ')' | '-' Primary | '+' Primary

// Session evaluates a stream of statements. It owns a lexer over the input
// and evaluates against a Context. It is not safe to use a Session
// concurrently.
type Session struct {
	lex *lexer
	ctx *Context
}

// NewSession creates a session reading statements from src. If ctx is nil,
// the session uses a new Context.
func NewSession(src io.RuneScanner, ctx *Context) *Session {
	if ctx == nil {
		ctx = NewContext()
	}
	return &Session{lex: lex(src), ctx: ctx}
}

// Context returns the context the session evaluates with.
func (s *Session) Context() *Context {
	return s.ctx
}

// Next evaluates the next statement. Print symbols before the statement are
// skipped. If the next token is the quit symbol, the error is ErrQuit; if the
// input ends before a statement begins, the error is io.EOF. Errors that
// implement InputError leave the session usable once Recover is called.
func (s *Session) Next() (float64, error) {
	tok, err := s.lex.get()
	for err == nil && tok.is(Print) {
		tok, err = s.lex.get()
	}
	if err != nil {
		return 0, err
	}
	if tok.is(Quit) {
		return 0, ErrQuit
	}
	s.lex.putback(tok)
	return s.statement()
}

// Recover discards input through the next print symbol so that evaluation
// can resume after an error.
func (s *Session) Recover() error {
	return s.lex.ignore(Print)
}

// Run evaluates statements until the quit symbol or the end of the input.
// Before each statement, Run calls prompt if it is not nil. After each
// statement, Run calls emit with the result or an InputError; after an
// error, Run recovers and continues. Run returns nil on quit or at the end of
// the input, and otherwise the first error that does not implement
// InputError.
func (s *Session) Run(prompt func(), emit func(v float64, err error)) error {
	for {
		if prompt != nil {
			prompt()
		}
		v, err := s.Next()
		switch {
		case err == nil:
			emit(v, nil)
			continue
		case errors.Is(err, ErrQuit), errors.Is(err, io.EOF):
			return nil
		}
		var ie InputError
		if !errors.As(err, &ie) {
			return err
		}
		emit(0, err)
		if err := s.Recover(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// statement evaluates a declaration or an expression.
func (s *Session) statement() (float64, error) {
	tok, err := s.lex.get()
	if err != nil {
		return 0, err
	}
	if tok.Kind() == KindLet {
		return s.declaration()
	}
	s.lex.putback(tok)
	return s.expression()
}

// declaration evaluates a declaration after its keyword and declares the
// variable.
func (s *Session) declaration() (float64, error) {
	tok, err := s.lex.get()
	if err != nil {
		return 0, err
	}
	name, ok := tok.Name()
	if !ok {
		return 0, s.unexpected(tok, &DeclarationError{Col: s.lex.pos, Want: "name", Got: tok.text()})
	}
	col := s.lex.pos
	tok, err = s.lex.get()
	if err != nil {
		return 0, err
	}
	if !tok.is('=') {
		return 0, s.unexpected(tok, &DeclarationError{Col: s.lex.pos, Want: "=", Got: tok.text()})
	}
	v, err := s.expression()
	if err != nil {
		return 0, err
	}
	if _, err := s.ctx.vars.Declare(name, v); err != nil {
		var re *RedeclarationError
		if errors.As(err, &re) {
			re.Col = col
		}
		return 0, err
	}
	return v, nil
}

// expression evaluates terms joined by + and -.
func (s *Session) expression() (float64, error) {
	left, err := s.term()
	if err != nil {
		return 0, err
	}
	for {
		tok, err := s.lex.get()
		if err != nil {
			return s.end(left, err)
		}
		switch {
		case tok.is('+'):
			r, err := s.term()
			if err != nil {
				return 0, err
			}
			left += r
		case tok.is('-'):
			r, err := s.term()
			if err != nil {
				return 0, err
			}
			left -= r
		default:
			s.lex.putback(tok)
			return left, nil
		}
	}
}

// term evaluates primaries joined by *, /, and %.
func (s *Session) term() (float64, error) {
	left, err := s.primary()
	if err != nil {
		return 0, err
	}
	for {
		tok, err := s.lex.get()
		if err != nil {
			return s.end(left, err)
		}
		col := s.lex.pos
		switch {
		case tok.is('*'):
			r, err := s.primary()
			if err != nil {
				return 0, err
			}
			left *= r
		case tok.is('/'):
			r, err := s.primary()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, &DomainError{Col: col, Op: '/', X: left}
			}
			left /= r
		case tok.is('%'):
			r, err := s.primary()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, &DomainError{Col: col, Op: '%', X: left}
			}
			left = math.Mod(left, r)
		default:
			s.lex.putback(tok)
			return left, nil
		}
	}
}

// primary evaluates a number, a variable, a signed primary, or a
// parenthesized expression.
func (s *Session) primary() (float64, error) {
	tok, err := s.lex.get()
	if err != nil {
		return 0, err
	}
	switch tok.Kind() {
	case KindNumber:
		v, _ := tok.Value()
		return v, nil
	case KindIdent:
		name, _ := tok.Name()
		v, err := s.ctx.vars.Lookup(name)
		if err != nil {
			return 0, &NameError{Col: s.lex.pos, Name: name}
		}
		return v, nil
	}
	switch {
	case tok.is('('):
		v, err := s.expression()
		if err != nil {
			return 0, err
		}
		tok, err = s.lex.get()
		if err != nil {
			return 0, err
		}
		if !tok.is(')') {
			return 0, s.unexpected(tok, &BracketError{Col: s.lex.pos, Right: tok.text()})
		}
		return v, nil
	case tok.is('-'):
		v, err := s.primary()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case tok.is('+'):
		return s.primary()
	default:
		return 0, s.unexpected(tok, &OperandError{Col: s.lex.pos, Got: tok.text()})
	}
}

// end handles an error reading the operator after a complete operand. The
// end of the input ends the expression.
func (s *Session) end(left float64, err error) (float64, error) {
	if errors.Is(err, io.EOF) {
		return left, nil
	}
	return 0, err
}

// unexpected pushes back a token that ended a statement early so that
// recovery does not skip past it, then returns err.
func (s *Session) unexpected(tok Token, err error) error {
	s.lex.putback(tok)
	return err
}

// Eval is a shortcut to evaluate a single statement from src in a new
// context. The statement may be followed by print symbols, but nothing else.
func Eval(src io.RuneScanner, opts ...ContextOption) (float64, error) {
	s := NewSession(src, NewContext(opts...))
	v, err := s.statement()
	if err != nil {
		return 0, err
	}
	for {
		tok, err := s.lex.get()
		switch {
		case errors.Is(err, io.EOF):
			return v, nil
		case err != nil:
			return 0, err
		case !tok.is(Print):
			return 0, &EndError{Col: s.lex.pos, Got: tok.text()}
		}
	}
}

// EvalString is a shortcut to evaluate a single statement in a string.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	return Eval(strings.NewReader(src), opts...)
}
