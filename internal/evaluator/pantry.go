package evaluator

import "unicode/utf8"

// Builtin is a pantry recipe implemented in Go. It collects arguments one
// application at a time and runs once it has arity of them.
type Builtin struct {
	Name  string
	arity int
	impl  func(ev *Evaluator, args []Value) (Value, error)
	pre   []Value
}

func (b *Builtin) repr() string { return "<pantry " + b.Name + ">" }

func (b *Builtin) call(ev *Evaluator, arg Value) (Value, error) {
	all := make([]Value, 0, len(b.pre)+1)
	all = append(all, b.pre...)
	all = append(all, arg)
	if len(all) < b.arity {
		return &Builtin{Name: b.Name, arity: b.arity, impl: b.impl, pre: all}, nil
	}
	return b.impl(ev, all)
}

func newBuiltin(name string, arity int, impl func(ev *Evaluator, args []Value) (Value, error)) *Builtin {
	return &Builtin{Name: name, arity: arity, impl: impl}
}

// pantry is the initial ambient environment.
func pantry() *Env {
	var env *Env
	for _, b := range []*Builtin{
		newBuiltin("first", 1, func(_ *Evaluator, args []Value) (Value, error) {
			bowl, err := bowlArg("first", args[0])
			if err != nil {
				return nil, err
			}
			if len(bowl.Items) == 0 {
				return nil, typeErrorf("first of Nil")
			}
			return bowl.Items[0], nil
		}),
		newBuiltin("rest", 1, func(_ *Evaluator, args []Value) (Value, error) {
			bowl, err := bowlArg("rest", args[0])
			if err != nil {
				return nil, err
			}
			if len(bowl.Items) == 0 {
				return nil, typeErrorf("rest of Nil")
			}
			cp := make([]Value, len(bowl.Items)-1)
			copy(cp, bowl.Items[1:])
			return Bowl{Items: cp}, nil
		}),
		newBuiltin("empty", 1, func(_ *Evaluator, args []Value) (Value, error) {
			bowl, err := bowlArg("empty", args[0])
			if err != nil {
				return nil, err
			}
			return Bool{V: len(bowl.Items) == 0}, nil
		}),
		newBuiltin("size", 1, func(_ *Evaluator, args []Value) (Value, error) {
			switch x := args[0].(type) {
			case Bowl:
				return Cal{V: int64(len(x.Items))}, nil
			case Rcp:
				return Cal{V: int64(utf8.RuneCountInString(x.V))}, nil
			}
			return nil, typeMismatch("size", args[0])
		}),
		newBuiltin("push", 2, func(_ *Evaluator, args []Value) (Value, error) {
			bowl, err := bowlArg("push", args[1])
			if err != nil {
				return nil, err
			}
			cp := make([]Value, 0, len(bowl.Items)+1)
			cp = append(cp, bowl.Items...)
			cp = append(cp, args[0])
			return Bowl{Items: cp}, nil
		}),
		newBuiltin("map", 2, func(ev *Evaluator, args []Value) (Value, error) {
			bowl, err := bowlArg("map", args[1])
			if err != nil {
				return nil, err
			}
			out := make([]Value, 0, len(bowl.Items))
			for _, it := range bowl.Items {
				v, err := ev.apply(args[0], it)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return Bowl{Items: out}, nil
		}),
		newBuiltin("filter", 2, func(ev *Evaluator, args []Value) (Value, error) {
			bowl, err := bowlArg("filter", args[1])
			if err != nil {
				return nil, err
			}
			out := make([]Value, 0, len(bowl.Items))
			for _, it := range bowl.Items {
				v, err := ev.apply(args[0], it)
				if err != nil {
					return nil, err
				}
				keep, ok := v.(Bool)
				if !ok {
					return nil, typeErrorf("filter recipe must return Bool, found %s", typeName(v))
				}
				if keep.V {
					out = append(out, it)
				}
			}
			return Bowl{Items: out}, nil
		}),
		newBuiltin("fold", 3, func(ev *Evaluator, args []Value) (Value, error) {
			bowl, err := bowlArg("fold", args[2])
			if err != nil {
				return nil, err
			}
			acc := args[1]
			for _, it := range bowl.Items {
				step, err := ev.apply(args[0], acc)
				if err != nil {
					return nil, err
				}
				if acc, err = ev.apply(step, it); err != nil {
					return nil, err
				}
			}
			return acc, nil
		}),
		newBuiltin("toRcp", 1, func(_ *Evaluator, args []Value) (Value, error) {
			if s, ok := args[0].(Rcp); ok {
				return s, nil
			}
			return Rcp{V: Format(args[0])}, nil
		}),
	} {
		env = env.Extend(b.Name, b)
	}
	return env
}

func bowlArg(name string, v Value) (Bowl, error) {
	b, ok := v.(Bowl)
	if !ok {
		return Bowl{}, typeMismatch(name, v)
	}
	return b, nil
}

// PantryNames lists the built-in recipes.
func PantryNames() []string {
	names := pantry().Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[len(names)-1-i] = n
	}
	return out
}
