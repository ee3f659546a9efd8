package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).Run(append([]string{"icook", "--no-color"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	out, err := runApp(t, "-e", "cook x = 2;; [x, x * 1.5]")
	require.NoError(t, err)
	assert.Equal(t, "[2, 3.0]\n", out)

	out, err = runApp(t, "run", "-e", `"pot" + "ato"`)
	require.NoError(t, err)
	assert.Equal(t, "\"potato\"\n", out)

	// --expr before the command name still applies to it
	for _, args := range [][]string{
		{"-e", "size [1, 2]", "run"},
		{"-e", "size [1, 2]", "fmt"},
	} {
		out, err = runApp(t, args...)
		require.NoError(t, err, args)
		assert.NotEmpty(t, out, args)
	}
	out, err = runApp(t, "-e", "6 * 7", "run")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)

	path := writeFile(t, "dish.icook", "// soup\nfold (recipe a b -> a + b) 0 [1, 2, 3]\n")
	out, err = runApp(t, path)
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)
}

func TestRun_Errors(t *testing.T) {
	_, err := runApp(t, "-e", "cook salt = 1;; slt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UnboundVariable: slt")

	_, err = runApp(t, "-e", "size 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TypeError")

	_, err = runApp(t, "--max-depth", "20", "-e", "cook f = recipe self n -> if n == 0 then 0 else self self (n - 1);; f f 50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "StackOverflow")

	_, err = runApp(t, "run", "a.icook", "b.icook")
	require.Error(t, err)
}

func TestRun_ConfigAndPrelude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kitchen.icook"), []byte("cook pinch = 2"), 0o644))
	cfgPath := filepath.Join(dir, "icook.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("prelude: [kitchen.icook]\ncolor: false\n"), 0o644))

	out, err := runApp(t, "--config", cfgPath, "-e", "pinch * 10")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)

	bad := writeFile(t, "bad.yaml", "spice: 3\n")
	_, err = runApp(t, "--config", bad, "-e", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestTokens(t *testing.T) {
	out, err := runApp(t, "tokens", "-e", `cook s = "a"`)
	require.NoError(t, err)
	want := `{"type":"cook","value":"cook","pos":"1:1"}
{"type":"IDENT","value":"s","pos":"1:6"}
{"type":"=","value":"=","pos":"1:8"}
{"type":"STRING","value":"\"a\"","pos":"1:10"}
{"type":"EOF","value":"","pos":"1:13"}
`
	assert.Equal(t, want, out)

	out, err = runApp(t, "tokens", "--table", "-e", "x + 1")
	require.NoError(t, err)
	assert.Contains(t, out, "LEXEME")
	assert.Contains(t, out, "IDENT")

	_, err = runApp(t, "tokens", "-e", "a & b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lex error at 1:3")
}

func TestAST(t *testing.T) {
	out, err := runApp(t, "ast", "-e", "f 1")
	require.NoError(t, err)
	assert.Equal(t, "Program\n  FunctionApp\n    Identifier f\n    Cal 1\n", out)

	out, err = runApp(t, "ast", "--raw", "-e", "f 1")
	require.NoError(t, err)
	assert.Contains(t, out, "parser.Program")
	assert.Contains(t, out, "Name: (string) (len=1) \"f\"")

	_, err = runApp(t, "ast", "-e", "(1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}

func TestFmt(t *testing.T) {
	out, err := runApp(t, "fmt", "-e", "cook inc = recipe x -> x + 1;; inc (-2)")
	require.NoError(t, err)
	assert.Equal(t, "cook inc = (recipe x -> (x + 1));;\n(inc (-2))\n", out)
	assert.False(t, strings.Contains(out, "\x1b["))
}
