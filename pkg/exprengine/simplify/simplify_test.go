package simplify_test

import (
	"testing"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/equiv"
	"github.com/randalmurphal/exprengine/pkg/exprengine/format"
	"github.com/randalmurphal/exprengine/pkg/exprengine/parse"
	"github.com/randalmurphal/exprengine/pkg/exprengine/simplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) ast.Node {
	t.Helper()
	tree, err := parse.FromText(text, nil)
	require.NoError(t, err)
	return tree
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		// Identities
		{"add zero right", "x + 0", "x"},
		{"add zero left", "0 + x", "x"},
		{"subtract zero", "x - 0", "x"},
		{"subtract self", "x - x", "0"},
		{"subtract equal subtrees", "(a + b) - (a + b)", "0"},
		{"multiply by zero left", "0 * x", "0"},
		{"multiply by zero right", "x * 0", "0"},
		{"multiply by one right", "x * 1", "x"},
		{"multiply by one left", "1 * x", "x"},
		{"zero divided", "0 / x", "0"},
		{"divide by one", "x / 1", "x"},
		{"divide self", "x / x", "1"},
		{"power zero", "x ^ 0", "1"},
		{"power one", "x ^ 1", "x"},
		{"one to a power", "1 ^ x", "1"},
		{"zero to positive literal", "0 ^ 3", "0"},
		{"zero to variable", "0 ^ x", "0 ^ x"},
		{"double negation", "--x", "x"},
		{"nested double negation", "-(-(x + y))", "x + y"},
		{"unary plus", "+x", "x"},

		// Folding
		{"constant arithmetic", "2 + 3 * 4", "14"},
		{"constant power", "2 ^ 10", "1024"},
		{"constant modulo", "7 % 3", "1"},
		{"negated constant", "-(3)", "-3"},
		{"negated negative constant", "- -3", "3"},
		{"sqrt constant", "sqrt(16)", "4"},
		{"square constant", "3²", "9"},
		{"cube constant", "2³", "8"},
		{"fold below variable", "x * (2 + 3)", "x * 5"},

		// Declined folds
		{"division by zero", "1 / 0", "1 / 0"},
		{"zero over zero", "0 / 0", "0 / 0"},
		{"modulo by zero", "5 % 0", "5 % 0"},
		{"sqrt of negative", "sqrt(0 - 4)", "√(-4)"},
		{"overflow", "10 ^ 400", "10 ^ 400"},
		{"denominator becomes zero", "x / (x - x)", "x / 0"},

		// Single pass
		{"bottom-up", "(x + 0) * 1", "x"},
		{"children first", "(x + 0) * (y - y)", "0"},
		{"no reassociation", "x + 1 - 1", "x + 1 - 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := simplify.Simplify(mustParse(t, tt.text))
			assert.Equal(t, tt.want, format.Format(got))
		})
	}
}

func TestSimplify_Leaves(t *testing.T) {
	x := ast.Var("x")
	assert.Same(t, x, simplify.Simplify(x))

	n := ast.Num(2)
	assert.Same(t, n, simplify.Simplify(n))
}

func TestSimplify_DoesNotModifyInput(t *testing.T) {
	tree := mustParse(t, "(x + 0) * 1 - --y")
	before := format.Format(tree)

	_ = simplify.Simplify(tree)

	assert.Equal(t, before, format.Format(tree))
}

func TestSimplify_PreservesValue(t *testing.T) {
	for _, text := range []string{
		"(x + 0) * 1",
		"x * (2 + 3) - 0",
		"(a + b) ^ 1 / 1",
		"--a * b ^ 0 + 0 * c",
		"x³ + sqrt(16) * y",
		"(a - a) + b / b",
		"2 ^ 3 ^ 2 - x % 4",
	} {
		t.Run(text, func(t *testing.T) {
			tree := mustParse(t, text)
			report := equiv.CheckTrees(tree, simplify.Simplify(tree))
			assert.True(t, report.Equivalent, "mismatch at %+v", report.Mismatch)
		})
	}
}

func TestSimplify_NeverIncreasesSize(t *testing.T) {
	for _, text := range []string{
		"x",
		"x + y * z",
		"(x + 0) * 1",
		"sqrt(0 - 4)",
		"1 / 0 + x",
		"-(-(-x))",
	} {
		t.Run(text, func(t *testing.T) {
			tree := mustParse(t, text)
			assert.LessOrEqual(t, ast.Size(simplify.Simplify(tree)), ast.Size(tree))
		})
	}
}

func TestSimplify_AddZeroMatchesOperand(t *testing.T) {
	for _, text := range []string{"x", "a * b + 1", "(x + 0) * 1", "--y ^ 2", "sqrt(16)"} {
		t.Run(text, func(t *testing.T) {
			tree := mustParse(t, text)
			assert.True(t, ast.Equal(simplify.Simplify(tree), simplify.Simplify(ast.Bin("+", tree, ast.Num(0)))))
			assert.True(t, ast.IsNumber(simplify.Simplify(ast.Bin("*", tree, ast.Num(0))), 0))
		})
	}
}
