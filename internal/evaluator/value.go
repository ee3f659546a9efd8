package evaluator

import (
	"strconv"
	"strings"

	"github.com/jonathanjma/iCook/internal/parser"
)

// Value system
type Value interface{ repr() string }

type (
	Cal  struct{ V int64 }
	Joul struct{ V float64 }
	Rcp  struct{ V string }
	Bool struct{ V bool }
	Unit struct{}
	Bowl struct{ Items []Value }
)

// Closure is a recipe value: one parameter, a body and the environment it
// was cooked in.
type Closure struct {
	Param string
	Body  parser.Expr
	Env   *Env
}

func (v Cal) repr() string  { return strconv.FormatInt(v.V, 10) }
func (v Joul) repr() string { return formatJoul(v.V) }
func (v Rcp) repr() string  { return strconv.Quote(v.V) }
func (v Bool) repr() string { return strconv.FormatBool(v.V) }
func (v Unit) repr() string { return "()" }
func (v Bowl) repr() string {
	if len(v.Items) == 0 {
		return "Nil"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, it := range v.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Format(it))
	}
	b.WriteByte(']')
	return b.String()
}
func (c *Closure) repr() string { return "<recipe " + c.Param + ">" }

// formatJoul always keeps a fractional part so floats read back as floats.
func formatJoul(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}

// Format produces the canonical printed representation for a value
func Format(v Value) string {
	if v == nil {
		return "()"
	}
	return v.repr()
}

func typeName(v Value) string {
	switch v.(type) {
	case Cal:
		return "Cal"
	case Joul:
		return "Joul"
	case Rcp:
		return "Rcp"
	case Bool:
		return "Bool"
	case Unit:
		return "Unit"
	case Bowl:
		return "Bowl"
	case *Closure, *Builtin:
		return "Recipe"
	default:
		return "Unknown"
	}
}

// TypeName is the user-facing name of v's kind.
func TypeName(v Value) string { return typeName(v) }
