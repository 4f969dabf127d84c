package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile writes a test fixture file.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
