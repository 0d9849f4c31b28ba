package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.Equal(t, "scalargrad "+version+"\n", out.String())
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))
	assert.Contains(t, out.String(), "Commands:")

	out.Reset()
	err := run([]string{"train"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "train"`)
}

func TestRun_EvalPowerRule(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"eval", "-no-color", "-set", "x=3", "4*x^5"}, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "variable")
	assert.Contains(t, got, "gradient")
	assert.Contains(t, got, "1620")
	assert.Contains(t, got, "4*x^5 = 972\n")
	assert.Contains(t, got, "nodes: 4\n")
}

func TestRun_EvalReuseAndSeed(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"eval", "-no-color", "-seed", "0.5", "-set", "a=1", "a", "+", "a"}, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "a + a = 2\n")
	assert.Regexp(t, `a\s+│\s+1\s+│\s+1\s+│`, got)
}

func TestRun_EvalUnboundDefaultsToZero(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"eval", "-no-color", "-set", "x=2", "x*y"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "x*y = 0\n")
}

func TestRun_EvalErrors(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorContains(t, run([]string{"eval"}, &out), "missing expression")
	assert.ErrorContains(t, run([]string{"eval", "x +"}, &out), "syntax error")
	assert.ErrorContains(t, run([]string{"eval", "-set", "x", "x"}, &out), "invalid binding")
	assert.ErrorContains(t, run([]string{"eval", "-set", "x=3", "-x"}, &out), "flag provided but not defined")
}

func TestRun_EvalLeadingMinusAfterSeparator(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"eval", "-no-color", "-set", "x=3", "--", "-x^2"}, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "-x^2 = -9\n")
	assert.Regexp(t, `x\s+│\s+3\s+│\s+-6\s+│`, got)
}

func TestBindings(t *testing.T) {
	b := bindings{}
	require.NoError(t, b.Set("y=2"))
	require.NoError(t, b.Set("x=1.5"))
	assert.Equal(t, "x=1.5,y=2", b.String())
	assert.Error(t, b.Set("nope"))
}
