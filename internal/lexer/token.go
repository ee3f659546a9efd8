package lexer

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota

	IDENT
	INT
	FLOAT
	STRING
	TRUE
	FALSE

	// keywords
	COOK
	IN
	RECIPE
	IF
	THEN
	ELSE

	// operators and punctuation
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	BANG     // !
	ASSIGN   // =
	EQ       // ==
	NEQ      // !=
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=
	AND      // &&
	OR       // ||
	ARROW    // ->
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	SEMISEMI // ;;
)

var kindNames = [...]string{
	EOF:      "EOF",
	IDENT:    "IDENT",
	INT:      "INT",
	FLOAT:    "FLOAT",
	STRING:   "STRING",
	TRUE:     "TRUE",
	FALSE:    "FALSE",
	COOK:     "cook",
	IN:       "in",
	RECIPE:   "recipe",
	IF:       "if",
	THEN:     "then",
	ELSE:     "else",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	BANG:     "!",
	ASSIGN:   "=",
	EQ:       "==",
	NEQ:      "!=",
	LT:       "<",
	LE:       "<=",
	GT:       ">",
	GE:       ">=",
	AND:      "&&",
	OR:       "||",
	ARROW:    "->",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	COMMA:    ",",
	SEMISEMI: ";;",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= COOK && k <= ELSE }

// keywords maps reserved words to their kinds. Boolean literals are reserved too.
var keywords = map[string]Kind{
	"cook":   COOK,
	"in":     IN,
	"recipe": RECIPE,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"true":   TRUE,
	"false":  FALSE,
}

// Pos is a location in the source. Line and Col are 1-based, Offset is a byte offset.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is one lexical unit. Literal tokens carry their decoded payload.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Pos

	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// String renders the token back into source form, so that lexing the
// result yields an equivalent token.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return ""
	case INT:
		return strconv.FormatInt(t.Int, 10)
	case FLOAT:
		s := strconv.FormatFloat(t.Float, 'f', -1, 64)
		for i := 0; i < len(s); i++ {
			if s[i] == '.' {
				return s
			}
		}
		return s + ".0"
	case STRING:
		return `"` + t.Str + `"`
	case IDENT:
		return t.Lexeme
	case TRUE, FALSE:
		return strconv.FormatBool(t.Bool)
	default:
		return t.Kind.String()
	}
}

// Equivalent reports whether two tokens denote the same lexical unit,
// ignoring position and lexeme spelling.
func (t Token) Equivalent(o Token) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case INT:
		return t.Int == o.Int
	case FLOAT:
		return t.Float == o.Float
	case STRING:
		return t.Str == o.Str
	case IDENT:
		return t.Lexeme == o.Lexeme
	}
	return true
}
