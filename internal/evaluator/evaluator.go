package evaluator

import (
	"fmt"

	"github.com/jonathanjma/iCook/internal/parser"
)

// DefaultMaxDepth bounds nested evaluations when no limit is configured.
const DefaultMaxDepth = 10000

// Evaluator walks the AST. It owns the ambient top-level environment that
// definitions accumulate into; everything else is passed explicitly.
type Evaluator struct {
	globals  *Env
	maxDepth int
	depth    int
}

type Option func(*Evaluator)

// WithMaxDepth sets the nesting limit after which evaluation fails with
// StackOverflow. A limit <= 0 disables the check.
func WithMaxDepth(n int) Option { return func(ev *Evaluator) { ev.maxDepth = n } }

// WithoutPantry starts from an empty ambient environment.
func WithoutPantry() Option { return func(ev *Evaluator) { ev.globals = nil } }

func New(opts ...Option) *Evaluator {
	ev := &Evaluator{globals: pantry(), maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(ev)
	}
	return ev
}

// Eval evaluates e under env with a fresh evaluator.
func Eval(e parser.Expr, env *Env) (Value, error) { return New().Eval(e, env) }

// Globals is the current ambient environment.
func (ev *Evaluator) Globals() *Env { return ev.globals }

// Run evaluates the top-level forms in order. Definitions extend the ambient
// environment for the forms after them; the value of the last form is
// returned. On error the ambient environment is left as it was before Run.
func (ev *Evaluator) Run(prog parser.Program) (Value, error) {
	saved := ev.globals
	var last Value = Unit{}
	for _, form := range prog.Forms {
		v, err := ev.Eval(form, ev.globals)
		if err != nil {
			ev.globals = saved
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (ev *Evaluator) Eval(e parser.Expr, env *Env) (Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.maxDepth > 0 && ev.depth > ev.maxDepth {
		return nil, &RuntimeError{Kind: StackOverflow, Msg: fmt.Sprintf("recipe nested deeper than %d steps", ev.maxDepth)}
	}

	switch ex := e.(type) {
	case parser.Cal:
		return Cal{V: ex.Value}, nil
	case parser.Joul:
		return Joul{V: ex.Value}, nil
	case parser.Rcp:
		return Rcp{V: ex.Value}, nil
	case parser.Bool:
		return Bool{V: ex.Value}, nil
	case parser.Unit:
		return Unit{}, nil
	case parser.Identifier:
		v, ok := env.Lookup(ex.Name)
		if !ok {
			return nil, unbound(ex.Name)
		}
		return v, nil
	case parser.Bowl:
		items := make([]Value, 0, len(ex.Items))
		for _, it := range ex.Items {
			v, err := ev.Eval(it, env)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return Bowl{Items: items}, nil
	case parser.Binop:
		return ev.evalBinop(ex, env)
	case parser.Unop:
		v, err := ev.Eval(ex.Operand, env)
		if err != nil {
			return nil, err
		}
		return unary(ex.Op, v)
	case parser.LetExpression:
		v, err := ev.Eval(ex.Bound, env)
		if err != nil {
			return nil, err
		}
		return ev.Eval(ex.Body, env.Extend(ex.Name, v))
	case parser.LetDefinition:
		v, err := ev.Eval(ex.Bound, env)
		if err != nil {
			return nil, err
		}
		ev.globals = ev.globals.Extend(ex.Name, v)
		return v, nil
	case parser.Function:
		return &Closure{Param: ex.Param, Body: ex.Body, Env: env}, nil
	case parser.FunctionApp:
		fn, err := ev.Eval(ex.Fn, env)
		if err != nil {
			return nil, err
		}
		if !isFunction(fn) {
			return nil, &RuntimeError{Kind: NotAFunction, Msg: fmt.Sprintf("%s cannot be applied", typeName(fn))}
		}
		arg, err := ev.Eval(ex.Arg, env)
		if err != nil {
			return nil, err
		}
		return ev.apply(fn, arg)
	case parser.Ternary:
		p, err := ev.Eval(ex.Pred, env)
		if err != nil {
			return nil, err
		}
		b, ok := p.(Bool)
		if !ok {
			return nil, typeErrorf("if needs a Bool condition, found %s", typeName(p))
		}
		if b.V {
			return ev.Eval(ex.Then, env)
		}
		return ev.Eval(ex.Else, env)
	default:
		return nil, fmt.Errorf("unknown expression %T", e)
	}
}

func (ev *Evaluator) evalBinop(ex parser.Binop, env *Env) (Value, error) {
	l, err := ev.Eval(ex.Left, env)
	if err != nil {
		return nil, err
	}
	// && and || short-circuit
	if ex.Op == parser.And || ex.Op == parser.Or {
		lb, ok := l.(Bool)
		if !ok {
			return nil, typeMismatch(ex.Op.String(), l)
		}
		if (ex.Op == parser.And) != lb.V {
			return lb, nil
		}
		r, err := ev.Eval(ex.Right, env)
		if err != nil {
			return nil, err
		}
		if _, ok := r.(Bool); !ok {
			return nil, typeMismatch(ex.Op.String(), l, r)
		}
		return r, nil
	}
	r, err := ev.Eval(ex.Right, env)
	if err != nil {
		return nil, err
	}
	return binary(ex.Op, l, r)
}

func isFunction(v Value) bool {
	switch v.(type) {
	case *Closure, *Builtin:
		return true
	}
	return false
}

// apply calls fn with one argument. The closure body only sees its captured
// environment plus the parameter.
func (ev *Evaluator) apply(fn, arg Value) (Value, error) {
	switch f := fn.(type) {
	case *Closure:
		return ev.Eval(f.Body, f.Env.Extend(f.Param, arg))
	case *Builtin:
		return f.call(ev, arg)
	}
	return nil, &RuntimeError{Kind: NotAFunction, Msg: fmt.Sprintf("%s cannot be applied", typeName(fn))}
}
