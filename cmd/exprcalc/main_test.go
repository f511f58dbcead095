package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"exprcalc"}, args...))
	return out.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"constant", []string{"eval", "2 + 3 * 4"}, "14\n"},
		{"bindings", []string{"eval", "--var", "x=3", "--var", "y = 0.5", "x^2 - y"}, "8.5\n"},
		{"short bindings", []string{"eval", "-v", "x=3", "-v", "y=1", "x * y"}, "3\n"},
		{"unicode input", []string{"eval", "6 × 2 ÷ 3"}, "4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	_, err := run(t, "eval", "10 / 0")
	require.Error(t, err)
	assert.Equal(t, "Division by zero", err.Error())

	_, err = run(t, "eval", "--var", "x", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid binding")

	_, err = run(t, "eval", "--var", "x=abc", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value for x")

	_, err = run(t, "eval", "--var", "x=1", "-v", "y=2", "x + y")
	require.Error(t, err, "long and short spellings cannot be mixed")

	_, err = run(t, "eval")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 argument(s)")

	_, err = run(t, "--log-level", "loud", "eval", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSimplifyAndFormat(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"simplify", []string{"simplify", "(x + 0) * 1"}, "x\n"},
		{"simplify fold", []string{"simplify", "x * (2 + 3)"}, "x * 5\n"},
		{"format", []string{"format", "((a+b))*c"}, "(a + b) * c\n"},
		{"format unicode", []string{"format", "--unicode", "a*b-c"}, "a × b − c\n"},
		{"format compact", []string{"format", "--no-spaces", "a + b"}, "a+b\n"},
		{"format full parens", []string{"format", "--full-parens", "a + b * c"}, "a + (b * c)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format:\n  unicode: true\n  spaces: false\n"), 0o600))

	out, err := run(t, "--config", path, "format", "a * b")
	require.NoError(t, err)
	assert.Equal(t, "a×b\n", out)

	out, err = run(t, "--config", path, "format", "--no-spaces=false", "a * b")
	require.NoError(t, err)
	assert.Equal(t, "a × b\n", out)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "format", "a")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	out, err := run(t, "compare", "x + x", "2 * x")
	require.NoError(t, err)
	assert.Equal(t, "equivalent (10 checked, 0 skipped)\n", out)

	out, err = run(t, "compare", "a - b", "b - a")
	require.Error(t, err)
	assert.Equal(t, "not equivalent: -0.75 != 0.75 at a=0.5, b=1.25\n", out)

	out, err = run(t, "compare", "x / (x - x)", "1 / 0")
	require.Error(t, err)
	assert.Equal(t, "not equivalent: no evaluable sample (10 skipped)\n", out)

	out, err = run(t, "compare", "x +", "x")
	require.Error(t, err)
	assert.Equal(t, "not equivalent: Missing operand(s) for operator +\n", out)

	out, err = run(t, "compare", "--samples", "3", "x", "x")
	require.NoError(t, err)
	assert.Equal(t, "equivalent (3 checked, 0 skipped)\n", out)
}

func TestVerdicts(t *testing.T) {
	db := filepath.Join(t.TempDir(), "verdicts.db")

	_, err := run(t, "compare", "--db", db, "(a + b)^2", "a^2 + 2*a*b + b^2")
	require.NoError(t, err)
	_, err = run(t, "compare", "--db", db, "a", "b")
	require.Error(t, err)

	out, err := run(t, "verdicts", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "a ≢ b")
	assert.Contains(t, out, "(a + b)^2 ≡ a^2 + 2*a*b + b^2")
	assert.Less(t, bytes.Index([]byte(out), []byte("a ≢ b")), bytes.Index([]byte(out), []byte("(a + b)^2")))

	out, err = run(t, "verdicts", "--db", db, "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")))
}

func TestVerdicts_ConfigPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "exprcalc.yaml")
	db := filepath.Join(dir, "journal.db")
	require.NoError(t, os.WriteFile(cfgPath, []byte("verdicts:\n  path: "+db+"\n"), 0o600))

	_, err := run(t, "--config", cfgPath, "compare", "x * 1", "x")
	require.NoError(t, err)

	out, err := run(t, "--config", cfgPath, "verdicts")
	require.NoError(t, err)
	assert.Contains(t, out, "x * 1 ≡ x")
}
