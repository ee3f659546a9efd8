package evaluator

// Env is a persistent scope chain. Each Env holds one binding and points at
// the scope it extends; the nil *Env is the empty environment. Extending
// never mutates the receiver, so closures keep seeing exactly the bindings
// that existed when they were created.
type Env struct {
	name   string
	val    Value
	parent *Env
}

// Extend returns a new environment binding name to v on top of e.
func (e *Env) Extend(name string, v Value) *Env {
	return &Env{name: name, val: v, parent: e}
}

// Lookup finds the innermost binding of name.
func (e *Env) Lookup(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if s.name == name {
			return s.val, true
		}
	}
	return nil, false
}

// Names lists the visible names, innermost first, without shadowed duplicates.
func (e *Env) Names() []string {
	seen := map[string]bool{}
	var out []string
	for s := e; s != nil; s = s.parent {
		if !seen[s.name] {
			seen[s.name] = true
			out = append(out, s.name)
		}
	}
	return out
}
