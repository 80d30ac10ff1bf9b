package clculator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advskel/clculator"
)

func TestAssignment(t *testing.T) {
	ctx := clculator.NewContext()

	out, err := ctx.Execute("x = 3.5")
	require.NoError(t, err)
	assert.Equal(t, "x := 3.5", out)

	out, err = ctx.Execute("x * 2")
	require.NoError(t, err)
	assert.Equal(t, "7", out)

	// Redefinition replaces the value.
	_, err = ctx.Execute("x = x + 1")
	require.NoError(t, err)
	out, err = ctx.Execute("x")
	require.NoError(t, err)
	assert.Equal(t, "4.5", out)
}

func TestReservedNames(t *testing.T) {
	ctx := clculator.NewContext()
	for _, src := range []string{
		"pi = 3",
		"e = 2",
		"i = 1",
		"ans = 0",
		"help = 1",
		"sin = 1",
		"del pi",
		"del sin",
		"del help",
	} {
		_, err := ctx.Execute(src)
		var res *clculator.ReservedError
		require.ErrorAs(t, err, &res, "%q should be rejected", src)
	}
}

func TestDelete(t *testing.T) {
	ctx := clculator.NewContext()

	_, err := ctx.Execute("x = 1")
	require.NoError(t, err)
	out, err := ctx.Execute("del x")
	require.NoError(t, err)
	assert.Equal(t, `deleted variable "x"`, out)
	_, err = ctx.Execute("x")
	require.Error(t, err)

	_, err = ctx.Execute("f[n] = n")
	require.NoError(t, err)
	out, err = ctx.Execute("del f")
	require.NoError(t, err)
	assert.Equal(t, `deleted function "f"`, out)
	_, err = ctx.Execute("f[1]")
	require.Error(t, err)

	_, err = ctx.Execute("del nosuch")
	require.Error(t, err)

	// Any whitespace separates the command from its argument.
	_, err = ctx.Execute("y = 2")
	require.NoError(t, err)
	out, err = ctx.Execute("del\ty")
	require.NoError(t, err)
	assert.Equal(t, `deleted variable "y"`, out)

	// Names that merely start with "del" are ordinary identifiers.
	out, err = ctx.Execute("delta = 3")
	require.NoError(t, err)
	assert.Equal(t, "delta := 3", out)
}

func TestPrecisionCommand(t *testing.T) {
	ctx := clculator.NewContext()

	out, err := ctx.Execute("precision")
	require.NoError(t, err)
	assert.Equal(t, "precision: 32 digits", out)

	out, err = ctx.Execute("precision 5")
	require.NoError(t, err)
	assert.Equal(t, "precision set to 5 digits", out)
	out, err = ctx.Execute("2/3")
	require.NoError(t, err)
	assert.Equal(t, "0.66667", out)

	// The argument needs no separator.
	out, err = ctx.Execute("precision7")
	require.NoError(t, err)
	assert.Equal(t, "precision set to 7 digits", out)
	out, err = ctx.Execute("precision\t6")
	require.NoError(t, err)
	assert.Equal(t, "precision set to 6 digits", out)

	out, err = ctx.Execute("precision auto")
	require.NoError(t, err)
	assert.Equal(t, "precision set to auto", out)
	out, err = ctx.Execute("precision")
	require.NoError(t, err)
	assert.Equal(t, "precision: auto", out)
	out, err = ctx.Execute("0.25 + 0.25")
	require.NoError(t, err)
	assert.Equal(t, "0.5", out)

	for _, src := range []string{"precision 0", "precision -3", "precision xyz"} {
		_, err := ctx.Execute(src)
		require.Error(t, err, "%q should be rejected", src)
	}
}

func TestReset(t *testing.T) {
	ctx := clculator.NewContext()

	_, err := ctx.Execute("x = 1")
	require.NoError(t, err)
	_, err = ctx.Execute("f[n] = n")
	require.NoError(t, err)

	out, err := ctx.Execute("reset")
	require.NoError(t, err)
	assert.Equal(t, "environment reset", out)

	_, err = ctx.Execute("x")
	require.Error(t, err)
	_, err = ctx.Execute("f[1]")
	require.Error(t, err)
	// Builtins and constants survive.
	out, err = ctx.Execute("sin[0]")
	require.NoError(t, err)
	assert.Equal(t, "0", out)
	out, err = ctx.Execute("ans")
	require.NoError(t, err)
	assert.Equal(t, "0", out)
}

func TestEnv(t *testing.T) {
	ctx := clculator.NewContext()

	_, err := ctx.Execute("x = 3")
	require.NoError(t, err)
	_, err = ctx.Execute("f[n] = n + x")
	require.NoError(t, err)
	_, err = ctx.Execute("f[0] = 0")
	require.NoError(t, err)

	out, err := ctx.Execute("env")
	require.NoError(t, err)
	assert.Contains(t, out, "x = 3")
	assert.Contains(t, out, "ans = 3")
	assert.Contains(t, out, "f[n] := n+x")
	assert.Contains(t, out, "f[0] = 0")
	// Builtins are listed by help, not env.
	assert.NotContains(t, out, "sin")
}

func TestHelp(t *testing.T) {
	ctx := clculator.NewContext()
	out, err := ctx.Execute("help")
	require.NoError(t, err)
	for _, want := range []string{"del", "precision", "reset", "sin[_0]", "sum[_0, _1, _2, _3]"} {
		assert.Contains(t, out, want)
	}
}

func TestCommandWords(t *testing.T) {
	ctx := clculator.NewContext()

	// Command words never read as undefined variables.
	out, err := ctx.Execute("exit")
	require.NoError(t, err)
	assert.Equal(t, "exit quits the interactive shell", out)

	var ev *clculator.EvalError
	_, err = ctx.Execute("del")
	require.ErrorAs(t, err, &ev)
}

func TestEmptyInput(t *testing.T) {
	ctx := clculator.NewContext()
	for _, src := range []string{"", "   ", "\t"} {
		out, err := ctx.Execute(src)
		require.NoError(t, err)
		assert.Equal(t, "", out)
	}
}

func TestWhitespaceInsignificant(t *testing.T) {
	ctx := clculator.NewContext()
	out, err := ctx.Execute("  f [ n ] =  n * 2 ")
	require.NoError(t, err)
	assert.Equal(t, "f[n] := n*2", out)
	out, err = ctx.Execute("f [ 21 ]")
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestPrecisionChangeFlushesCaches(t *testing.T) {
	ctx := clculator.NewContext()

	_, err := ctx.Execute("f[n] = 2/3 + 0*n")
	require.NoError(t, err)
	out, err := ctx.Execute("f[1]")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0.6666666666"), out)

	_, err = ctx.Execute("precision 5")
	require.NoError(t, err)
	out, err = ctx.Execute("f[1]")
	require.NoError(t, err)
	assert.Equal(t, "0.66667", out)
}
