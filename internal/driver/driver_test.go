package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanjma/iCook/internal/config"
	"github.com/jonathanjma/iCook/internal/evaluator"
	"github.com/jonathanjma/iCook/internal/lexer"
	"github.com/jonathanjma/iCook/internal/parser"
)

func TestSession_Run(t *testing.T) {
	s := NewSession(config.Default())
	v, err := s.Run("inline", "cook half = recipe x -> x / 2;; half 9")
	require.NoError(t, err)
	assert.Equal(t, evaluator.Cal{V: 4}, v)

	// definitions survive into the next run
	v, err = s.Run("inline", "half 20")
	require.NoError(t, err)
	assert.Equal(t, evaluator.Cal{V: 10}, v)
}

func TestSession_StageErrorsAreWrapped(t *testing.T) {
	s := NewSession(config.Default())
	tests := []struct {
		src   string
		stage string
	}{
		{`"open`, "lex"},
		{"(1 + ", "parse"},
		{"1 / 0", "runtime"},
	}
	for _, tc := range tests {
		_, err := s.Run("dish.icook", tc.src)
		require.Error(t, err)
		assert.Equal(t, tc.stage, Stage(err), err.Error())
		assert.Contains(t, err.Error(), "dish.icook: ")
	}

	_, err := s.Run("x", "(1")
	var perr *parser.Error
	require.True(t, errors.As(err, &perr))
	_, err = s.Run("x", "#")
	var lerr *lexer.Error
	require.True(t, errors.As(err, &lerr))
}

func TestSession_MaxDepthFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 50
	s := NewSession(cfg)
	_, err := s.Run("deep", "cook count = recipe self n -> if n == 0 then 0 else 1 + self self (n - 1);; count count 100")
	require.Error(t, err)
	assert.True(t, evaluator.IsKind(err, evaluator.StackOverflow))

	v, err := NewSession(config.Default()).Run("deep", "cook count = recipe self n -> if n == 0 then 0 else 1 + self self (n - 1);; count count 100")
	require.NoError(t, err)
	assert.Equal(t, evaluator.Cal{V: 100}, v)
}

func TestSession_Prelude(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.icook")
	require.NoError(t, os.WriteFile(base, []byte("cook sugar = 3;;\ncook sweeten = recipe x -> x + sugar"), 0o644))
	extra := filepath.Join(dir, "extra.icook")
	require.NoError(t, os.WriteFile(extra, []byte("cook twice = recipe f x -> f (f x)"), 0o644))

	cfg := config.Default()
	cfg.Prelude = []string{base, extra}
	s := NewSession(cfg)
	require.NoError(t, s.LoadPrelude())

	v, err := s.Run("main", "twice sweeten 1")
	require.NoError(t, err)
	assert.Equal(t, evaluator.Cal{V: 7}, v)
}

func TestSession_PreludeErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.icook")
	require.NoError(t, os.WriteFile(broken, []byte("cook = 1"), 0o644))

	cfg := config.Default()
	cfg.Prelude = []string{broken}
	err := NewSession(cfg).LoadPrelude()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prelude: ")
	assert.Equal(t, "parse", Stage(err))

	cfg.Prelude = []string{filepath.Join(dir, "missing.icook")}
	err = NewSession(cfg).LoadPrelude()
	require.Error(t, err)
	assert.Equal(t, "io", Stage(err))
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestExplain_SuggestsCloseNames(t *testing.T) {
	s := NewSession(config.Default())
	_, err := s.Run("m", "cook butter = 1")
	require.NoError(t, err)
	_, err = s.Run("m", "buter + 1")
	require.Error(t, err)
	assert.Equal(t, "m: UnboundVariable: buter is not in the pantry (did you mean butter?)", s.Explain(err))

	_, err = s.Run("m", "zzzzzz")
	require.Error(t, err)
	assert.Equal(t, "m: UnboundVariable: zzzzzz is not in the pantry", s.Explain(err))

	// locals are not offered
	_, err = s.Run("m", "cook nutmeg = 1 in nutmge")
	require.Error(t, err)
	assert.NotContains(t, s.Explain(err), "did you mean")

	_, err = s.Run("m", "1 / 0")
	require.Error(t, err)
	assert.NotContains(t, s.Explain(err), "did you mean")
}

func TestSuggest(t *testing.T) {
	var env *evaluator.Env
	env = env.Extend("flour", evaluator.Unit{}).Extend("sugar", evaluator.Unit{})
	assert.Equal(t, "sugar", Suggest("sugr", env))
	assert.Equal(t, "flour", Suggest("flours", env))
	assert.Equal(t, "", Suggest("eggs", env))
	assert.Equal(t, "", Suggest("x", nil))
}

func TestTokensAndParse(t *testing.T) {
	toks, err := Tokens("t", "cook x = 1")
	require.NoError(t, err)
	assert.Len(t, toks, 5)

	prog, err := Parse("t", "1;; 2")
	require.NoError(t, err)
	assert.Len(t, prog.Forms, 2)
}
