package shell

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(`echo hello && echo world`))
}

func TestValidate_SyntaxError(t *testing.T) {
	err := Validate(`if [ true; then`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestRun_CapturesOutput(t *testing.T) {
	var stdout bytes.Buffer
	r := New(t.TempDir())
	r.Stdout = &stdout

	err := r.Run(context.Background(), `echo provisioning`)
	require.NoError(t, err)
	assert.Equal(t, "provisioning\n", stdout.String())
}

func TestRun_NonZeroExit(t *testing.T) {
	r := New(t.TempDir())
	r.Stdout = &bytes.Buffer{}
	r.Stderr = &bytes.Buffer{}

	err := r.Run(context.Background(), `exit 3`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 3")
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	r := New(dir)
	r.Stdout = &stdout

	err := r.Run(context.Background(), `pwd`)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), dir)
}

func TestRun_SyntaxErrorBeforeExecution(t *testing.T) {
	r := New(t.TempDir())

	err := r.Run(context.Background(), `for (( ;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}
