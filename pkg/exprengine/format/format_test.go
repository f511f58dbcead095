package format_test

import (
	"math"
	"testing"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/format"
	"github.com/randalmurphal/exprengine/pkg/exprengine/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) ast.Node {
	t.Helper()
	tree, err := parse.FromText(text, nil)
	require.NoError(t, err)
	return tree
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"precedence", "a+b*c", "a + b * c"},
		{"required grouping", "(a + b) * c", "(a + b) * c"},
		{"redundant grouping", "((a)) + (b * c)", "a + b * c"},
		{"left-assoc right child", "a - (b - c)", "a - (b - c)"},
		{"left-assoc left child", "(a - b) - c", "a - b - c"},
		{"division right child", "a / (b * c)", "a / (b * c)"},
		{"division left child", "(a * b) / c", "a * b / c"},
		{"right-assoc right child", "a ^ (b ^ c)", "a ^ b ^ c"},
		{"right-assoc left child", "(a ^ b) ^ c", "(a ^ b) ^ c"},
		{"power over sum", "(a + b) ^ 2", "(a + b) ^ 2"},
		{"unary operand", "-x ^ 2", "-x ^ 2"},
		{"unary over sum", "-(x + 1)", "-(x + 1)"},
		{"unary over power", "-(x ^ 2)", "-(x ^ 2)"},
		{"unary after binary", "a - -b", "a - -b"},
		{"unary in product", "2 * -3", "2 * -3"},
		{"sqrt", "sqrt(x)", "√x"},
		{"sqrt over sum", "sqrt(x + 1)", "√(x + 1)"},
		{"postfix on leaf", "x²", "x²"},
		{"postfix on group", "(x + 1)³", "(x + 1)³"},
		{"postfix on unary", "(-x)²", "(-x)²"},
		{"alias normalization", "a ** b × c", "a ^ b * c"},
		{"decimals", "0.5 + 1e3", "0.5 + 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Format(mustParse(t, tt.text)))
		})
	}
}

func TestFormat_Options(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []format.Option
		want string
	}{
		{"unicode", "a * b - c / d", []format.Option{format.WithUnicode(true)}, "a × b − c ÷ d"},
		{"unicode unary", "-x", []format.Option{format.WithUnicode(true)}, "−x"},
		{"no spaces", "a + b * c", []format.Option{format.WithSpaces(false)}, "a+b*c"},
		{"full parens product", "a + b * c", []format.Option{format.WithMinimalParens(false)}, "a + (b * c)"},
		{"full parens sum", "a + b + c", []format.Option{format.WithMinimalParens(false)}, "(a + b) + c"},
		{"full parens root", "a + b", []format.Option{format.WithMinimalParens(false)}, "a + b"},
		{
			name: "combined",
			text: "x * (y - 1)",
			opts: []format.Option{format.WithUnicode(true), format.WithSpaces(false)},
			want: "x×(y−1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Format(mustParse(t, tt.text), tt.opts...))
		})
	}
}

func TestFormat_NegativeLiterals(t *testing.T) {
	tests := []struct {
		name    string
		node    ast.Node
		unicode bool
		want    string
	}{
		{"root", ast.Num(-2), false, "-2"},
		{"root unicode", ast.Num(-2), true, "−2"},
		{"operand", ast.Bin("+", ast.Var("x"), ast.Num(-2)), false, "x + (-2)"},
		{"left operand", ast.Bin("^", ast.Num(-2), ast.Num(2)), false, "(-2) ^ 2"},
		{"under unary", ast.Un("√", ast.Num(-4)), false, "√(-4)"},
		{"under postfix", ast.Un("²", ast.Num(-3)), false, "(-3)²"},
		{"negative zero", ast.Bin("*", ast.Var("x"), ast.Num(math.Copysign(0, -1))), false, "x * (-0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Format(tt.node, format.WithUnicode(tt.unicode)))
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	o := format.DefaultOptions()
	assert.False(t, o.UseUnicode)
	assert.True(t, o.Spaces)
	assert.True(t, o.MinimalParens)

	tree := mustParse(t, "a-b")
	assert.Equal(t, format.Format(tree), format.FormatWith(tree, o))
}

func TestFormat_RoundTrip(t *testing.T) {
	texts := []string{
		"2 + 3 * 4",
		"8 - 4 - 2",
		"8 - (4 - 2)",
		"2 ^ 3 ^ 4",
		"(2 ^ 3) ^ 4",
		"-x ^ 2",
		"-(x ^ 2)",
		"-x²",
		"(-x)²",
		"a - -b",
		"a ^ -b",
		"sqrt(x + 1) * (y - 2) / z",
		"[a + {b % c}] * d",
		"((x))",
		"--x",
		"x³ - x² + x - 1",
		"a / b / c",
		"a / (b / c)",
		"1.5e-7 * x",
	}

	configs := map[string][]format.Option{
		"default":    nil,
		"unicode":    {format.WithUnicode(true)},
		"compact":    {format.WithSpaces(false)},
		"all parens": {format.WithMinimalParens(false)},
	}

	for _, text := range texts {
		tree := mustParse(t, text)
		for name, opts := range configs {
			t.Run(name+"/"+text, func(t *testing.T) {
				printed := format.Format(tree, opts...)
				again, err := parse.FromText(printed, nil)
				require.NoError(t, err, "reparse %q", printed)
				assert.True(t, ast.Equal(tree, again), "%q -> %q", text, printed)
			})
		}
	}
}
