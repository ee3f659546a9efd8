package parser

// Program is the root produced by ParseProgram: the top-level forms in
// source order.
type Program struct {
	Forms []Expr
}

// Expr is a marker interface for expressions. The set of implementations
// is closed; nodes are never mutated after parsing.
type Expr interface{ isExpr() }

// Literals
type Cal struct{ Value int64 }

func (Cal) isExpr() {}

type Rcp struct{ Value string }

func (Rcp) isExpr() {}

type Joul struct{ Value float64 }

func (Joul) isExpr() {}

type Bool struct{ Value bool }

func (Bool) isExpr() {}

type Unit struct{}

func (Unit) isExpr() {}

type Identifier struct{ Name string }

func (Identifier) isExpr() {}

// Bowl is a list literal. An empty bowl is Nil.
type Bowl struct{ Items []Expr }

func (Bowl) isExpr() {}

type Binop struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (Binop) isExpr() {}

type Unop struct {
	Op      UnaryOp
	Operand Expr
}

func (Unop) isExpr() {}

// LetExpression is `cook name = bound in body`. The binding is visible in
// body only.
type LetExpression struct {
	Name  string
	Bound Expr
	Body  Expr
}

func (LetExpression) isExpr() {}

// LetDefinition is a top-level `cook name = bound`. It extends the ambient
// environment for the forms after it.
type LetDefinition struct {
	Name  string
	Bound Expr
}

func (LetDefinition) isExpr() {}

// Function takes exactly one parameter; `recipe a b -> e` nests.
type Function struct {
	Param string
	Body  Expr
}

func (Function) isExpr() {}

type FunctionApp struct {
	Fn  Expr
	Arg Expr
}

func (FunctionApp) isExpr() {}

type Ternary struct {
	Pred Expr
	Then Expr
	Else Expr
}

func (Ternary) isExpr() {}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Neq
	Lt
	Le
	Gt
	Ge
	And
	Or
)

var binaryOpSymbols = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Mod: "%",
	Eq:  "==",
	Neq: "!=",
	Lt:  "<",
	Le:  "<=",
	Gt:  ">",
	Ge:  ">=",
	And: "&&",
	Or:  "||",
}

func (op BinaryOp) String() string {
	if int(op) >= 0 && int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	}
	return "?"
}
