package equiv_test

import (
	"testing"

	"github.com/randalmurphal/exprengine/pkg/exprengine/equiv"
	"github.com/randalmurphal/exprengine/pkg/exprengine/errors"
	"github.com/randalmurphal/exprengine/pkg/exprengine/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "x + 1", "x + 1", true},
		{"commuted", "a + b", "b + a", true},
		{"binomial square", "(a + b)^2", "a^2 + 2*a*b + b^2", true},
		{"difference of squares", "x² - y²", "(x - y) * (x + y)", true},
		{"doubling", "x + x", "2 * x", true},
		{"self difference", "x - x", "0", true},
		{"constants", "2 + 2", "4", true},
		{"constants differ", "2 + 2", "5", false},
		{"off by one", "x", "x + 1", false},
		{"different variables", "x", "y", false},
		{"subtraction order", "a - b", "b - a", false},
		{"power association", "2 ^ 3 ^ 2", "(2 ^ 3) ^ 2", false},
		{"unicode alias", "a × b", "a * b", true},
		{"parse failure", "x +", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equiv.Compare(tt.a, tt.b))
			assert.Equal(t, tt.want, equiv.Compare(tt.b, tt.a), "comparison is symmetric")
		})
	}
}

func TestCheck_SkipsDomainErrors(t *testing.T) {
	report := equiv.Check("sqrt(x) * sqrt(x)", "x")

	assert.True(t, report.Equivalent)
	assert.Equal(t, []string{"x"}, report.Variables)
	assert.Equal(t, 7, report.Checked)
	assert.Equal(t, 3, report.Skipped)
	assert.Nil(t, report.Mismatch)
	assert.NoError(t, report.Err)
}

func TestCheck_AllSkipped(t *testing.T) {
	report := equiv.Check("x / (x - x)", "1 / 0")
	assert.False(t, report.Equivalent)
	assert.Equal(t, 0, report.Checked)
	assert.Equal(t, 10, report.Skipped)

	report = equiv.Check("x / (x - x)", "1 / 0", equiv.WithRequireValidSample(false))
	assert.True(t, report.Equivalent)
}

func TestCheck_Mismatch(t *testing.T) {
	report := equiv.Check("x", "x + 1")

	assert.False(t, report.Equivalent)
	assert.Equal(t, 1, report.Checked)
	require.NotNil(t, report.Mismatch)
	assert.Equal(t, 0.5, report.Mismatch.Bindings["x"])
	assert.Equal(t, 0.5, report.Mismatch.Left)
	assert.Equal(t, 1.5, report.Mismatch.Right)
}

func TestCheck_ParseError(t *testing.T) {
	report := equiv.Check("x", "(x + 1")

	assert.False(t, report.Equivalent)
	require.Error(t, report.Err)
	assert.Equal(t, errors.KindMismatchedParentheses, errors.KindOf(report.Err))
}

func TestCheck_Options(t *testing.T) {
	t.Run("samples", func(t *testing.T) {
		report := equiv.Check("x * y", "y * x", equiv.WithSamples(25))
		assert.True(t, report.Equivalent)
		assert.Equal(t, 25, report.Checked)
	})

	t.Run("constants use one sample", func(t *testing.T) {
		report := equiv.Check("3 * 4", "12", equiv.WithSamples(25))
		assert.Equal(t, 1, report.Checked)
	})

	t.Run("tolerance", func(t *testing.T) {
		assert.False(t, equiv.Compare("x", "x + 0.001"))
		assert.True(t, equiv.Compare("x", "x + 0.001", equiv.WithTolerance(0.01)))
	})

	t.Run("build options", func(t *testing.T) {
		assert.False(t, equiv.Compare("(x]", "x"))
		assert.True(t, equiv.Compare("(x]", "x", equiv.WithBuildOptions(parse.WithStrictBrackets(false))))
	})

	t.Run("ignored values", func(t *testing.T) {
		report := equiv.Check("x", "x", equiv.WithSamples(0), equiv.WithTolerance(-1))
		assert.Equal(t, equiv.DefaultSamples, report.Checked)
	})
}

func TestCheck_NaNAgreement(t *testing.T) {
	assert.True(t, equiv.Compare("(0 - 8) ^ 0.5", "(0 - 2) ^ 0.5"))
	assert.False(t, equiv.Compare("(0 - 8) ^ 0.5", "2"))
}

func TestBindings(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}

	vars := equiv.Bindings(names, 0)
	assert.Equal(t, 0.5, vars["a"])
	assert.Equal(t, 1.25, vars["b"])
	assert.Equal(t, -2.5, vars["h"])
	assert.Equal(t, 0.5, vars["i"], "columns wrap around")

	assert.Equal(t, equiv.Bindings(names, 3), equiv.Bindings(names, 13), "rows wrap around")
	assert.Equal(t, 1.7, equiv.Bindings([]string{"x"}, 1)["x"])
}
