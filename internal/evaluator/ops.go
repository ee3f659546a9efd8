package evaluator

import (
	"math"

	"github.com/jonathanjma/iCook/internal/parser"
)

// binary applies a strict binary operator; && and || never reach here.
func binary(op parser.BinaryOp, a, b Value) (Value, error) {
	switch op {
	case parser.Add, parser.Sub, parser.Mul, parser.Div, parser.Mod:
		return arith(op, a, b)
	case parser.Eq, parser.Neq:
		eq, err := equal(op.String(), a, b)
		if err != nil {
			return nil, err
		}
		return Bool{V: eq == (op == parser.Eq)}, nil
	case parser.Lt, parser.Le, parser.Gt, parser.Ge:
		c, err := order(op, a, b)
		if err != nil {
			return nil, err
		}
		switch op {
		case parser.Lt:
			return Bool{V: c < 0}, nil
		case parser.Le:
			return Bool{V: c <= 0}, nil
		case parser.Gt:
			return Bool{V: c > 0}, nil
		default:
			return Bool{V: c >= 0}, nil
		}
	}
	return nil, typeMismatch(op.String(), a, b)
}

func arith(op parser.BinaryOp, a, b Value) (Value, error) {
	switch x := a.(type) {
	case Cal:
		switch y := b.(type) {
		case Cal:
			return calArith(op, x.V, y.V)
		case Joul:
			return joulArith(op, float64(x.V), y.V)
		}
	case Joul:
		switch y := b.(type) {
		case Cal:
			return joulArith(op, x.V, float64(y.V))
		case Joul:
			return joulArith(op, x.V, y.V)
		}
	case Rcp:
		if y, ok := b.(Rcp); ok && op == parser.Add {
			return Rcp{V: x.V + y.V}, nil
		}
	case Bowl:
		if y, ok := b.(Bowl); ok && op == parser.Add {
			out := make([]Value, 0, len(x.Items)+len(y.Items))
			out = append(out, x.Items...)
			out = append(out, y.Items...)
			return Bowl{Items: out}, nil
		}
	}
	return nil, typeMismatch(op.String(), a, b)
}

func calArith(op parser.BinaryOp, x, y int64) (Value, error) {
	switch op {
	case parser.Add:
		return Cal{V: x + y}, nil
	case parser.Sub:
		return Cal{V: x - y}, nil
	case parser.Mul:
		return Cal{V: x * y}, nil
	case parser.Div:
		if y == 0 {
			return nil, errDivisionByZero
		}
		// trunc toward zero
		return Cal{V: x / y}, nil
	default:
		if y == 0 {
			return nil, errDivisionByZero
		}
		return Cal{V: x % y}, nil
	}
}

func joulArith(op parser.BinaryOp, x, y float64) (Value, error) {
	switch op {
	case parser.Add:
		return Joul{V: x + y}, nil
	case parser.Sub:
		return Joul{V: x - y}, nil
	case parser.Mul:
		return Joul{V: x * y}, nil
	case parser.Div:
		if y == 0 {
			return nil, errDivisionByZero
		}
		return Joul{V: x / y}, nil
	default:
		if y == 0 {
			return nil, errDivisionByZero
		}
		return Joul{V: math.Mod(x, y)}, nil
	}
}

// equal is structural equality. Cal and Joul compare numerically; recipes
// and values of different kinds cannot be compared.
func equal(op string, a, b Value) (bool, error) {
	switch x := a.(type) {
	case Cal:
		switch y := b.(type) {
		case Cal:
			return x.V == y.V, nil
		case Joul:
			return float64(x.V) == y.V, nil
		}
	case Joul:
		switch y := b.(type) {
		case Cal:
			return x.V == float64(y.V), nil
		case Joul:
			return x.V == y.V, nil
		}
	case Rcp:
		if y, ok := b.(Rcp); ok {
			return x.V == y.V, nil
		}
	case Bool:
		if y, ok := b.(Bool); ok {
			return x.V == y.V, nil
		}
	case Unit:
		if _, ok := b.(Unit); ok {
			return true, nil
		}
	case Bowl:
		if y, ok := b.(Bowl); ok {
			if len(x.Items) != len(y.Items) {
				return false, nil
			}
			for i := range x.Items {
				eq, err := equal(op, x.Items[i], y.Items[i])
				if err != nil || !eq {
					return false, err
				}
			}
			return true, nil
		}
	}
	return false, typeMismatch(op, a, b)
}

// order compares two numbers or two strings.
func order(op parser.BinaryOp, a, b Value) (int, error) {
	cmpf := func(x, y float64) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	switch x := a.(type) {
	case Cal:
		switch y := b.(type) {
		case Cal:
			switch {
			case x.V < y.V:
				return -1, nil
			case x.V > y.V:
				return 1, nil
			}
			return 0, nil
		case Joul:
			return cmpf(float64(x.V), y.V), nil
		}
	case Joul:
		switch y := b.(type) {
		case Cal:
			return cmpf(x.V, float64(y.V)), nil
		case Joul:
			return cmpf(x.V, y.V), nil
		}
	case Rcp:
		if y, ok := b.(Rcp); ok {
			switch {
			case x.V < y.V:
				return -1, nil
			case x.V > y.V:
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, typeMismatch(op.String(), a, b)
}

func unary(op parser.UnaryOp, v Value) (Value, error) {
	switch op {
	case parser.Neg:
		switch x := v.(type) {
		case Cal:
			return Cal{V: -x.V}, nil
		case Joul:
			return Joul{V: -x.V}, nil
		}
	case parser.Not:
		if x, ok := v.(Bool); ok {
			return Bool{V: !x.V}, nil
		}
	}
	return nil, typeMismatch(op.String(), v)
}
