package evaluator

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies a RuntimeError.
type ErrorKind int

const (
	UnboundVariable ErrorKind = iota
	TypeError
	DivisionByZero
	NotAFunction
	StackOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundVariable:
		return "UnboundVariable"
	case TypeError:
		return "TypeError"
	case DivisionByZero:
		return "DivisionByZero"
	case NotAFunction:
		return "NotAFunction"
	case StackOverflow:
		return "StackOverflow"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// RuntimeError stops evaluation of the whole program. Name is set for
// UnboundVariable, Op and Types for TypeError.
type RuntimeError struct {
	Kind  ErrorKind
	Name  string
	Op    string
	Types []string
	Msg   string
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case UnboundVariable:
		return fmt.Sprintf("UnboundVariable: %s is not in the pantry", e.Name)
	case TypeError:
		if e.Msg != "" {
			return fmt.Sprintf("TypeError: %s", e.Msg)
		}
		return fmt.Sprintf("TypeError: unsupported operation %s on %s", e.Op, strings.Join(e.Types, ", "))
	case DivisionByZero:
		return "DivisionByZero: cannot split a dish into zero portions"
	case NotAFunction:
		return fmt.Sprintf("TypeError: not a function: %s", e.Msg)
	case StackOverflow:
		return fmt.Sprintf("StackOverflow: %s", e.Msg)
	}
	return e.Msg
}

func unbound(name string) error { return &RuntimeError{Kind: UnboundVariable, Name: name} }

func typeMismatch(op string, vals ...Value) error {
	types := make([]string, len(vals))
	for i, v := range vals {
		types[i] = typeName(v)
	}
	return &RuntimeError{Kind: TypeError, Op: op, Types: types}
}

func typeErrorf(format string, args ...interface{}) error {
	return &RuntimeError{Kind: TypeError, Msg: fmt.Sprintf(format, args...)}
}

var errDivisionByZero = &RuntimeError{Kind: DivisionByZero}

// IsKind reports whether err, or anything it wraps, is a RuntimeError of kind k.
func IsKind(err error, k ErrorKind) bool {
	var re *RuntimeError
	return errors.As(err, &re) && re.Kind == k
}
