// Package printer renders iCook syntax trees, either as an indented outline
// for debugging or as canonical source that parses back to an equivalent
// tree.
package printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathanjma/iCook/internal/parser"
)

// DefaultIndent is the number of spaces per tree level.
const DefaultIndent = 2

// Printer renders trees with a fixed indent width.
type Printer struct {
	Indent int
}

func New(indent int) *Printer {
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &Printer{Indent: indent}
}

// Tree renders e as an outline starting at the given level.
func Tree(e parser.Expr, level int) string { return New(DefaultIndent).Tree(e, level) }

func (p *Printer) Tree(e parser.Expr, level int) string {
	var b strings.Builder
	p.tree(&b, e, level)
	return b.String()
}

// Program renders every top-level form as an outline.
func (p *Printer) Program(prog parser.Program) string {
	var b strings.Builder
	b.WriteString("Program\n")
	for _, f := range prog.Forms {
		p.tree(&b, f, 1)
	}
	return b.String()
}

func (p *Printer) line(b *strings.Builder, level int, format string, args ...interface{}) {
	b.WriteString(strings.Repeat(" ", level*p.Indent))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

func (p *Printer) tree(b *strings.Builder, e parser.Expr, level int) {
	switch ex := e.(type) {
	case parser.Cal:
		p.line(b, level, "Cal %d", ex.Value)
	case parser.Joul:
		p.line(b, level, "Joul %s", joul(ex.Value))
	case parser.Rcp:
		p.line(b, level, "Rcp %q", ex.Value)
	case parser.Bool:
		p.line(b, level, "Bool %t", ex.Value)
	case parser.Unit:
		p.line(b, level, "Unit")
	case parser.Identifier:
		p.line(b, level, "Identifier %s", ex.Name)
	case parser.Bowl:
		if len(ex.Items) == 0 {
			p.line(b, level, "Bowl Nil")
			return
		}
		p.line(b, level, "Bowl")
		for _, it := range ex.Items {
			p.tree(b, it, level+1)
		}
	case parser.Binop:
		p.line(b, level, "Binop %s", ex.Op)
		p.tree(b, ex.Left, level+1)
		p.tree(b, ex.Right, level+1)
	case parser.Unop:
		p.line(b, level, "Unop %s", ex.Op)
		p.tree(b, ex.Operand, level+1)
	case parser.LetExpression:
		p.line(b, level, "LetExpression %s", ex.Name)
		p.tree(b, ex.Bound, level+1)
		p.tree(b, ex.Body, level+1)
	case parser.LetDefinition:
		p.line(b, level, "LetDefinition %s", ex.Name)
		p.tree(b, ex.Bound, level+1)
	case parser.Function:
		p.line(b, level, "Function %s", ex.Param)
		p.tree(b, ex.Body, level+1)
	case parser.FunctionApp:
		p.line(b, level, "FunctionApp")
		p.tree(b, ex.Fn, level+1)
		p.tree(b, ex.Arg, level+1)
	case parser.Ternary:
		p.line(b, level, "Ternary")
		p.tree(b, ex.Pred, level+1)
		p.tree(b, ex.Then, level+1)
		p.tree(b, ex.Else, level+1)
	default:
		p.line(b, level, "%T", e)
	}
}

// Source renders e as fully parenthesized iCook source. Strings containing
// a double quote have no source form and are printed verbatim.
func Source(e parser.Expr) string {
	switch ex := e.(type) {
	case parser.Cal:
		switch {
		case ex.Value == math.MinInt64:
			return "(-9223372036854775807 - 1)"
		case ex.Value < 0:
			return "(-" + strconv.FormatInt(-ex.Value, 10) + ")"
		}
		return strconv.FormatInt(ex.Value, 10)
	case parser.Joul:
		if ex.Value < 0 || math.Signbit(ex.Value) {
			return "(-" + joul(-ex.Value) + ")"
		}
		return joul(ex.Value)
	case parser.Rcp:
		return `"` + ex.Value + `"`
	case parser.Bool:
		return strconv.FormatBool(ex.Value)
	case parser.Unit:
		return "()"
	case parser.Identifier:
		return ex.Name
	case parser.Bowl:
		items := make([]string, len(ex.Items))
		for i, it := range ex.Items {
			items[i] = Source(it)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case parser.Binop:
		return "(" + Source(ex.Left) + " " + ex.Op.String() + " " + Source(ex.Right) + ")"
	case parser.Unop:
		return "(" + ex.Op.String() + Source(ex.Operand) + ")"
	case parser.LetExpression:
		return "(cook " + ex.Name + " = " + Source(ex.Bound) + " in " + Source(ex.Body) + ")"
	case parser.LetDefinition:
		return "cook " + ex.Name + " = " + Source(ex.Bound)
	case parser.Function:
		params := []string{ex.Param}
		body := ex.Body
		for {
			inner, ok := body.(parser.Function)
			if !ok {
				break
			}
			params = append(params, inner.Param)
			body = inner.Body
		}
		return "(recipe " + strings.Join(params, " ") + " -> " + Source(body) + ")"
	case parser.FunctionApp:
		return "(" + Source(ex.Fn) + " " + Source(ex.Arg) + ")"
	case parser.Ternary:
		return "(if " + Source(ex.Pred) + " then " + Source(ex.Then) + " else " + Source(ex.Else) + ")"
	}
	return fmt.Sprintf("%v", e)
}

// SourceProgram renders the forms of prog separated by ";;".
func SourceProgram(prog parser.Program) string {
	forms := make([]string, len(prog.Forms))
	for i, f := range prog.Forms {
		forms[i] = Source(f)
	}
	return strings.Join(forms, ";;\n")
}

func joul(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
