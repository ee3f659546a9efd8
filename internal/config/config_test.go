package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanjma/iCook/internal/evaluator"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, evaluator.DefaultMaxDepth, cfg.MaxDepth)
	assert.True(t, cfg.Color)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
max_depth: 500
indent: 4
color: false
prelude:
  - pantry.icook
`))
	require.NoError(t, err)
	assert.Equal(t, Config{MaxDepth: 500, Indent: 4, Color: false, Prelude: []string{"pantry.icook"}}, cfg)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("indent: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Indent)
	assert.Equal(t, evaluator.DefaultMaxDepth, cfg.MaxDepth)
}

func TestParse_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field":  "flavour: spicy\n",
		"bad type":       "max_depth: lots\n",
		"negative depth": "max_depth: -1\n",
		"wide indent":    "indent: 40\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ResolvesPreludeRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prelude: [base.icook, /abs/extra.icook]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "base.icook"), "/abs/extra.icook"}, cfg.Prelude)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
