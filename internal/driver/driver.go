// Package driver runs source through the lexer, parser and evaluator on
// behalf of the command line, and turns failures into readable messages.
package driver

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/jonathanjma/iCook/internal/config"
	"github.com/jonathanjma/iCook/internal/evaluator"
	"github.com/jonathanjma/iCook/internal/lexer"
	"github.com/jonathanjma/iCook/internal/parser"
)

// Session is one interpreter instance. Definitions made by earlier runs,
// including the prelude, are visible to later ones.
type Session struct {
	cfg config.Config
	ev  *evaluator.Evaluator
}

func NewSession(cfg config.Config) *Session {
	return &Session{
		cfg: cfg,
		ev:  evaluator.New(evaluator.WithMaxDepth(cfg.MaxDepth)),
	}
}

// LoadPrelude evaluates every configured prelude file in order.
func (s *Session) LoadPrelude() error {
	for _, path := range s.cfg.Prelude {
		glog.V(1).Infof("loading prelude %s", path)
		if _, err := s.RunFile(path); err != nil {
			return errors.Wrap(err, "prelude")
		}
	}
	return nil
}

// RunFile reads and runs a source file.
func (s *Session) RunFile(path string) (evaluator.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return s.Run(path, string(data))
}

// Run evaluates src; name identifies it in error messages.
func (s *Session) Run(name, src string) (evaluator.Value, error) {
	prog, err := Parse(name, src)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("%s: evaluating %d forms", name, len(prog.Forms))
	v, err := s.ev.Run(prog)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return v, nil
}

// Tokens lexes src eagerly.
func Tokens(name, src string) ([]lexer.Token, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	glog.V(1).Infof("%s: %d tokens", name, len(toks))
	return toks, nil
}

// Parse lexes and parses src into a program.
func Parse(name, src string) (parser.Program, error) {
	toks, err := Tokens(name, src)
	if err != nil {
		return parser.Program{}, err
	}
	prog, err := parser.New(toks).ParseProgram()
	if err != nil {
		return parser.Program{}, errors.Wrap(err, name)
	}
	return prog, nil
}

// Explain renders err for people, adding a suggestion when a name is
// misspelt. Only top-level definitions and the pantry are searched; names
// bound by cook-in or recipe parameters are gone once evaluation fails, so
// a misspelt local gets no suggestion.
func (s *Session) Explain(err error) string {
	msg := err.Error()
	var re *evaluator.RuntimeError
	if errors.As(err, &re) && re.Kind == evaluator.UnboundVariable {
		if alt := Suggest(re.Name, s.ev.Globals()); alt != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", alt)
		}
	}
	return msg
}

// maxSuggestDistance is the largest edit distance still offered as a typo fix.
const maxSuggestDistance = 2

// Suggest returns the visible name closest to name, or "" if none is close.
func Suggest(name string, env *evaluator.Env) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, cand := range env.Names() {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(cand), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

// Stage names the pipeline stage an error came from.
func Stage(err error) string {
	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
		runErr   *evaluator.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &runErr):
		return "runtime"
	}
	return "io"
}
