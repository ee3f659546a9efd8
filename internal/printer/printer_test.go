package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanjma/iCook/internal/evaluator"
	"github.com/jonathanjma/iCook/internal/parser"
)

func TestTree(t *testing.T) {
	e, err := parser.ParseExpr(`cook x = [1, 2.5] in if x == [] then f x "hi" else -()`)
	require.NoError(t, err)

	want := `LetExpression x
  Bowl
    Cal 1
    Joul 2.5
  Ternary
    Binop ==
      Identifier x
      Bowl Nil
    FunctionApp
      FunctionApp
        Identifier f
        Identifier x
      Rcp "hi"
    Unop -
      Unit
`
	assert.Equal(t, want, Tree(e, 0))
}

func TestTree_LevelAndWidth(t *testing.T) {
	e := parser.Function{Param: "x", Body: parser.Bool{Value: true}}
	assert.Equal(t, "    Function x\n      Bool true\n", Tree(e, 2))
	assert.Equal(t, "    Function x\n        Bool true\n", New(4).Tree(e, 1))
	assert.Equal(t, DefaultIndent, New(0).Indent)
}

func TestProgram(t *testing.T) {
	prog, err := parser.Parse("cook a = 1;; a")
	require.NoError(t, err)
	assert.Equal(t, "Program\n  LetDefinition a\n    Cal 1\n  Identifier a\n", New(2).Program(prog))
}

func TestSource(t *testing.T) {
	tests := []struct {
		e    parser.Expr
		want string
	}{
		{parser.Cal{Value: 3}, "3"},
		{parser.Cal{Value: -3}, "(-3)"},
		{parser.Joul{Value: 2}, "2.0"},
		{parser.Joul{Value: -0.5}, "(-0.5)"},
		{parser.Rcp{Value: "a b"}, `"a b"`},
		{parser.Bowl{Items: []parser.Expr{}}, "[]"},
		{parser.Unop{Op: parser.Not, Operand: parser.Unop{Op: parser.Not, Operand: parser.Bool{Value: false}}}, "(!(!false))"},
		{
			parser.Function{Param: "a", Body: parser.Function{Param: "b", Body: parser.Identifier{Name: "a"}}},
			"(recipe a b -> a)",
		},
		{
			parser.LetDefinition{Name: "z", Bound: parser.Binop{Op: parser.Mod, Left: parser.Cal{Value: 5}, Right: parser.Cal{Value: 2}}},
			"cook z = (5 % 2)",
		},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Source(tc.e))
	}
}

func TestSource_ReparsesToSameTree(t *testing.T) {
	for _, src := range []string{
		"1 + 2 * 3 - 4 / 5 % 6",
		"a || b && !c == (d < e)",
		"cook x = recipe a b -> a b in x 1 [2, 3]",
		"if p then -q else f (g h) i",
		`["a", 1.25, (), true, []]`,
	} {
		e, err := parser.ParseExpr(src)
		require.NoError(t, err)
		again, err := parser.ParseExpr(Source(e))
		require.NoError(t, err, Source(e))
		if diff := cmp.Diff(e, again); diff != "" {
			t.Errorf("%q round trip mismatch (-want +got):\n%s", src, diff)
		}
	}
}

func TestSourceProgram_PreservesValue(t *testing.T) {
	for _, src := range []string{
		`cook fact = recipe self n -> if n == 0 then 1 else n * self self (n - 1);; fact fact 6`,
		`cook double = recipe x -> x * 2;; map double [1, -2, 3]`,
		`cook x = 7 - -3;; cook y = x / 3;; [x, y, x % 3, 1.5 * y, "z" + "z"]`,
		`fold (recipe a b -> a && b) true [1 < 2, !false]`,
	} {
		prog, err := parser.Parse(src)
		require.NoError(t, err)
		want, err := evaluator.New().Run(prog)
		require.NoError(t, err)

		printed := SourceProgram(prog)
		reparsed, err := parser.Parse(printed)
		require.NoError(t, err, printed)
		got, err := evaluator.New().Run(reparsed)
		require.NoError(t, err, printed)
		assert.Equal(t, evaluator.Format(want), evaluator.Format(got), printed)
	}
}
