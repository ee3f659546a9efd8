package parser

import (
	"fmt"
	"strconv"

	"github.com/jonathanjma/iCook/internal/lexer"
)

// maxNesting bounds recursive descent so pathological input fails with an
// Error instead of exhausting the stack.
const maxNesting = 10000

// Error is a grammar violation. Found describes the offending token.
type Error struct {
	Pos    lexer.Pos
	Found  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s near %s: %s", e.Pos, e.Found, e.Reason)
}

// bailout carries an *Error out of the recursive descent.
type bailout struct{ err *Error }

type Parser struct {
	toks []lexer.Token
	i    int

	formStart int
	nesting   int
}

func New(toks []lexer.Token) *Parser { return &Parser{toks: toks} }

// Parse lexes and parses a whole program.
func Parse(src string) (Program, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return Program{}, err
	}
	return New(toks).ParseProgram()
}

// ParseExpr lexes and parses a single expression.
func ParseExpr(src string) (Expr, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseExpr()
}

func (p *Parser) cur() lexer.Token {
	if p.i >= len(p.toks) {
		var pos lexer.Pos
		if len(p.toks) > 0 {
			pos = p.toks[len(p.toks)-1].Pos
		}
		return lexer.Token{Kind: lexer.EOF, Pos: pos}
	}
	return p.toks[p.i]
}

func (p *Parser) next() lexer.Token {
	t := p.cur()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *Parser) match(k lexer.Kind) bool {
	if p.cur().Kind == k {
		p.i++
		return true
	}
	return false
}

func (p *Parser) expect(k lexer.Kind, context string) lexer.Token {
	t := p.cur()
	if t.Kind != k {
		p.fail(t, "expected '%s' %s", k, context)
	}
	p.i++
	return t
}

func (p *Parser) fail(t lexer.Token, format string, args ...interface{}) {
	panic(bailout{&Error{Pos: t.Pos, Found: describe(t), Reason: fmt.Sprintf(format, args...)}})
}

func describe(t lexer.Token) string {
	if t.Kind == lexer.EOF {
		return "end of input"
	}
	return strconv.Quote(t.Lexeme)
}

func (p *Parser) catch(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

// ParseProgram parses forms separated by ";;" until the end of input.
func (p *Parser) ParseProgram() (prog Program, err error) {
	defer p.catch(&err)
	var forms []Expr
	for {
		for p.match(lexer.SEMISEMI) {
		}
		if p.cur().Kind == lexer.EOF {
			break
		}
		forms = append(forms, p.parseForm())
		if p.match(lexer.SEMISEMI) {
			continue
		}
		if t := p.cur(); t.Kind != lexer.EOF {
			p.fail(t, "unexpected token after a complete expression")
		}
	}
	return Program{Forms: forms}, nil
}

// ParseExpr parses exactly one form and requires the input to end there.
func (p *Parser) ParseExpr() (e Expr, err error) {
	defer p.catch(&err)
	e = p.parseForm()
	if t := p.cur(); t.Kind != lexer.EOF {
		p.fail(t, "unexpected token after a complete expression")
	}
	return e, nil
}

func (p *Parser) parseForm() Expr {
	p.formStart = p.i
	return p.parseExpression(precLowest)
}

// Precedence values (higher binds tighter)
const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precAdd
	precMul
)

var binaryOps = map[lexer.Kind]struct {
	op   BinaryOp
	prec int
}{
	lexer.OR:      {Or, precOr},
	lexer.AND:     {And, precAnd},
	lexer.EQ:      {Eq, precCompare},
	lexer.NEQ:     {Neq, precCompare},
	lexer.LT:      {Lt, precCompare},
	lexer.LE:      {Le, precCompare},
	lexer.GT:      {Gt, precCompare},
	lexer.GE:      {Ge, precCompare},
	lexer.PLUS:    {Add, precAdd},
	lexer.MINUS:   {Sub, precAdd},
	lexer.STAR:    {Mul, precMul},
	lexer.SLASH:   {Div, precMul},
	lexer.PERCENT: {Mod, precMul},
}

// parseExpression is precedence climbing over the left-associative binary
// operators.
func (p *Parser) parseExpression(minPrec int) Expr {
	p.enter()
	defer p.leave()

	left := p.parseUnary()
	for {
		info, ok := binaryOps[p.cur().Kind]
		if !ok || info.prec < minPrec {
			return left
		}
		p.next()
		right := p.parseExpression(info.prec + 1)
		left = Binop{Op: info.op, Left: left, Right: right}
	}
}

// enter and leave track recursion depth; every self-recursive path goes
// through enter.
func (p *Parser) enter() {
	p.nesting++
	if p.nesting > maxNesting {
		p.fail(p.cur(), "expression nested too deeply")
	}
}

func (p *Parser) leave() { p.nesting-- }

func (p *Parser) parseUnary() Expr {
	switch p.cur().Kind {
	case lexer.MINUS, lexer.BANG:
		op := Neg
		if p.cur().Kind == lexer.BANG {
			op = Not
		}
		p.next()
		p.enter()
		defer p.leave()
		return Unop{Op: op, Operand: p.parseUnary()}
	case lexer.COOK:
		return p.parseCook()
	case lexer.RECIPE:
		return p.parseRecipe()
	case lexer.IF:
		return p.parseIf()
	}
	return p.parseApplication()
}

// parseCook handles both `cook x = e in body` and the top-level `cook x = e`.
func (p *Parser) parseCook() Expr {
	cookAt := p.i
	p.next()
	name := p.expect(lexer.IDENT, "after 'cook'").Lexeme
	p.expect(lexer.ASSIGN, fmt.Sprintf("after 'cook %s'", name))
	bound := p.parseExpression(precLowest)
	if p.match(lexer.IN) {
		body := p.parseExpression(precLowest)
		return LetExpression{Name: name, Bound: bound, Body: body}
	}
	if cookAt != p.formStart {
		p.fail(p.cur(), "expected 'in' after the binding of %s; definitions are only allowed at top level", name)
	}
	return LetDefinition{Name: name, Bound: bound}
}

// parseRecipe desugars `recipe a b -> e` into nested single-parameter functions.
func (p *Parser) parseRecipe() Expr {
	p.next()
	var params []string
	for p.cur().Kind == lexer.IDENT {
		params = append(params, p.next().Lexeme)
	}
	if len(params) == 0 {
		p.fail(p.cur(), "recipe needs at least one parameter")
	}
	p.expect(lexer.ARROW, "after recipe parameters")
	body := p.parseExpression(precLowest)
	for i := len(params) - 1; i >= 0; i-- {
		body = Function{Param: params[i], Body: body}
	}
	return body
}

func (p *Parser) parseIf() Expr {
	p.next()
	pred := p.parseExpression(precLowest)
	p.expect(lexer.THEN, "after the condition of 'if'")
	then := p.parseExpression(precLowest)
	p.expect(lexer.ELSE, "to complete 'if ... then ...'")
	els := p.parseExpression(precLowest)
	return Ternary{Pred: pred, Then: then, Else: els}
}

// parseApplication folds juxtaposed atoms left to right: f a b is (f a) b.
func (p *Parser) parseApplication() Expr {
	fn := p.parseAtom()
	for startsAtom(p.cur().Kind) {
		fn = FunctionApp{Fn: fn, Arg: p.parseAtom()}
	}
	return fn
}

func startsAtom(k lexer.Kind) bool {
	switch k {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE,
		lexer.IDENT, lexer.LPAREN, lexer.LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parseAtom() Expr {
	t := p.next()
	switch t.Kind {
	case lexer.INT:
		return Cal{Value: t.Int}
	case lexer.FLOAT:
		return Joul{Value: t.Float}
	case lexer.STRING:
		return Rcp{Value: t.Str}
	case lexer.TRUE, lexer.FALSE:
		return Bool{Value: t.Bool}
	case lexer.IDENT:
		return Identifier{Name: t.Lexeme}
	case lexer.LPAREN:
		if p.match(lexer.RPAREN) {
			return Unit{}
		}
		e := p.parseExpression(precLowest)
		p.expect(lexer.RPAREN, "to close '('")
		return e
	case lexer.LBRACKET:
		items := make([]Expr, 0)
		for !p.match(lexer.RBRACKET) {
			items = append(items, p.parseExpression(precLowest))
			if p.match(lexer.RBRACKET) {
				break
			}
			if !p.match(lexer.COMMA) {
				p.fail(p.cur(), "expected ',' or ']' in bowl")
			}
		}
		return Bowl{Items: items}
	}
	p.fail(t, "expected an expression")
	return nil
}
