package calc

import (
	"strconv"
)

// Variable is a named value.
type Variable struct {
	Name  string
	Value float64
}

// Table is a set of variables, unique by name, kept in declaration order.
// The zero Table is empty and ready to use. A Table is not safe for
// concurrent use.
type Table struct {
	vars []Variable
	idx  map[string]int
}

// find returns the index of name in t.vars, or -1.
func (t *Table) find(name string) int {
	if k, ok := t.idx[name]; ok {
		return k
	}
	return -1
}

// Lookup returns the value of a variable. If there is no such variable, the
// error is a *NameError.
func (t *Table) Lookup(name string) (float64, error) {
	k := t.find(name)
	if k < 0 {
		return 0, &NameError{Name: name}
	}
	return t.vars[k].Value, nil
}

// Update sets the value of an existing variable. If there is no such
// variable, the error is a *NameError and the table is unchanged.
func (t *Table) Update(name string, value float64) error {
	k := t.find(name)
	if k < 0 {
		return &NameError{Name: name}
	}
	t.vars[k].Value = value
	return nil
}

// Declare adds a new variable and returns its value. If the name is already
// declared, the error is a *RedeclarationError and the table is unchanged.
func (t *Table) Declare(name string, value float64) (float64, error) {
	if t.find(name) >= 0 {
		return 0, &RedeclarationError{Name: name}
	}
	if t.idx == nil {
		t.idx = make(map[string]int)
	}
	t.idx[name] = len(t.vars)
	t.vars = append(t.vars, Variable{Name: name, Value: value})
	return value, nil
}

// IsDeclared returns whether a variable exists.
func (t *Table) IsDeclared(name string) bool {
	return t.find(name) >= 0
}

// Vars returns a copy of the variables in declaration order.
func (t *Table) Vars() []Variable {
	return append([]Variable(nil), t.vars...)
}

// Len returns the number of variables.
func (t *Table) Len() int {
	return len(t.vars)
}

func (t *Table) clone() Table {
	n := Table{
		vars: append([]Variable(nil), t.vars...),
		idx:  make(map[string]int, len(t.idx)),
	}
	for k, v := range t.idx {
		n.idx[k] = v
	}
	return n
}

// NameError is an error from a lookup or update of a variable that is not
// declared. It implements InputError.
type NameError struct {
	// Col is the position of the name in the input, or 0 if the lookup did
	// not come from parsing.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined variable "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// RedeclarationError is an error from declaring a name that is already
// declared. It implements InputError.
type RedeclarationError struct {
	// Col is the position of the name in the input, or 0 if the declaration
	// did not come from parsing.
	Col int
	// Name is the name that was declared twice.
	Name string
}

func (err *RedeclarationError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Name)+" declared twice")
}

func (err *RedeclarationError) Pos() int {
	return err.Col
}
