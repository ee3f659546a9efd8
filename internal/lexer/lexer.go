package lexer

import (
	"fmt"
	"strconv"
)

// Error is a malformed or unrecognized token.
type Error struct {
	Pos    Pos
	Reason string
}

func (e *Error) Error() string { return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Reason) }

// Lexer turns source text into tokens on demand. After the first EOF or
// error every call to Next returns the same result.
type Lexer struct {
	src  string
	i    int
	line int
	col  int

	done bool
	last Token
	err  error
}

func New(src string) *Lexer { return &Lexer{src: src, line: 1, col: 1} }

// Lex converts src into a token slice terminated by EOF.
func Lex(src string) ([]Token, error) {
	lx := New(src)
	var out []Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.Kind == EOF {
			return out, nil
		}
	}
}

func (lx *Lexer) pos() Pos { return Pos{Offset: lx.i, Line: lx.line, Col: lx.col} }

// peek returns the byte off positions ahead, or 0 past the end.
func (lx *Lexer) peek(off int) byte {
	j := lx.i + off
	if j < 0 || j >= len(lx.src) {
		return 0
	}
	return lx.src[j]
}

func (lx *Lexer) advance() {
	if lx.src[lx.i] == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	lx.i++
}

func (lx *Lexer) fail(p Pos, format string, args ...interface{}) (Token, error) {
	lx.done = true
	lx.err = &Error{Pos: p, Reason: fmt.Sprintf(format, args...)}
	return Token{}, lx.err
}

// Next returns the next token.
func (lx *Lexer) Next() (Token, error) {
	if lx.done {
		return lx.last, lx.err
	}
	lx.skipBlank()

	start := lx.pos()
	if lx.i >= len(lx.src) {
		lx.done = true
		lx.last = Token{Kind: EOF, Pos: start}
		return lx.last, nil
	}
	ch := lx.src[lx.i]

	switch {
	case ch == '"':
		return lx.lexString(start)
	case isDigit(ch):
		return lx.lexNumber(start)
	case isIdentStart(ch):
		for lx.i < len(lx.src) && isIdentPart(lx.src[lx.i]) {
			lx.advance()
		}
		word := lx.src[start.Offset:lx.i]
		t := Token{Kind: IDENT, Lexeme: word, Pos: start}
		if k, ok := keywords[word]; ok {
			t.Kind = k
			t.Bool = k == TRUE
		}
		return t, nil
	}

	// Two-char operators win over their one-char prefixes.
	if k, ok := twoChar[string([]byte{ch, lx.peek(1)})]; ok {
		lx.advance()
		lx.advance()
		return Token{Kind: k, Lexeme: lx.src[start.Offset:lx.i], Pos: start}, nil
	}
	if k, ok := oneChar[ch]; ok {
		lx.advance()
		return Token{Kind: k, Lexeme: lx.src[start.Offset:lx.i], Pos: start}, nil
	}
	return lx.fail(start, "unexpected character %q", rune(ch))
}

var twoChar = map[string]Kind{
	"==": EQ,
	"!=": NEQ,
	"<=": LE,
	">=": GE,
	"&&": AND,
	"||": OR,
	"->": ARROW,
	";;": SEMISEMI,
}

var oneChar = map[byte]Kind{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'!': BANG,
	'=': ASSIGN,
	'<': LT,
	'>': GT,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
	',': COMMA,
}

// skipBlank skips whitespace and // line comments.
func (lx *Lexer) skipBlank() {
	for lx.i < len(lx.src) {
		ch := lx.src[lx.i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			lx.advance()
			continue
		}
		if ch == '/' && lx.peek(1) == '/' {
			for lx.i < len(lx.src) && lx.src[lx.i] != '\n' {
				lx.advance()
			}
			continue
		}
		return
	}
}

func (lx *Lexer) lexString(start Pos) (Token, error) {
	lx.advance() // opening quote
	for lx.i < len(lx.src) && lx.src[lx.i] != '"' {
		lx.advance()
	}
	if lx.i >= len(lx.src) {
		return lx.fail(start, "unterminated string")
	}
	lx.advance() // closing quote
	lexeme := lx.src[start.Offset:lx.i]
	return Token{Kind: STRING, Lexeme: lexeme, Pos: start, Str: lexeme[1 : len(lexeme)-1]}, nil
}

func (lx *Lexer) lexNumber(start Pos) (Token, error) {
	for lx.i < len(lx.src) && isDigit(lx.src[lx.i]) {
		lx.advance()
	}
	kind := INT
	if lx.peek(0) == '.' {
		if !isDigit(lx.peek(1)) {
			lx.advance()
			return lx.fail(start, "malformed number %q: expected digits after '.'", lx.src[start.Offset:lx.i])
		}
		lx.advance()
		for lx.i < len(lx.src) && isDigit(lx.src[lx.i]) {
			lx.advance()
		}
		kind = FLOAT
	}
	// 12abc is not a number followed by an identifier.
	if lx.i < len(lx.src) && isIdentStart(lx.src[lx.i]) {
		return lx.fail(start, "malformed number %q", lx.src[start.Offset:lx.i+1])
	}

	lexeme := lx.src[start.Offset:lx.i]
	t := Token{Kind: kind, Lexeme: lexeme, Pos: start}
	if kind == INT {
		v, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return lx.fail(start, "integer literal %s out of range", lexeme)
		}
		t.Int = v
		return t, nil
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return lx.fail(start, "float literal %s out of range", lexeme)
	}
	t.Float = f
	return t, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '\''
}
