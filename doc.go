// Package calc implements an interactive floating-point calculator.
//
// Input is a stream of statements, each an expression or a declaration,
// separated by ';'. "2+3*4;" prints 14. "let x = 5;" declares x, which later
// statements can use, but not declare again. The names pi and e are declared
// before any input. The quit symbol 'q' ends a session.
//
// A Session evaluates statements one at a time as it reads them, so a
// statement is evaluated as soon as its last token arrives. After an error,
// the session skips to the next ';' and continues.
//
package calc
