package execx

import (
	"context"
	"io"
)

// MockExecutor is a scriptable command executor shared by tests across
// packages. Unset functions fall back to permissive defaults.
type MockExecutor struct {
	LookPathFunc       func(file string) (string, error)
	RunFunc            func(name string, args ...string) (string, error)
	CombinedOutputFunc func(name string, args ...string) ([]byte, error)
	RunStreamFunc      func(ctx context.Context, stdout, stderr io.Writer, dir, name string, args ...string) error
	FileExistsFunc     func(path string) bool

	// Calls records every RunStream invocation as name followed by args.
	Calls [][]string
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

func (m *MockExecutor) Run(name string, args ...string) (string, error) {
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "1.0.0", nil
}

func (m *MockExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	if m.CombinedOutputFunc != nil {
		return m.CombinedOutputFunc(name, args...)
	}
	return []byte(""), nil
}

func (m *MockExecutor) RunStream(ctx context.Context, stdout, stderr io.Writer, dir, name string, args ...string) error {
	call := append([]string{name}, args...)
	m.Calls = append(m.Calls, call)
	if m.RunStreamFunc != nil {
		return m.RunStreamFunc(ctx, stdout, stderr, dir, name, args...)
	}
	return nil
}

func (m *MockExecutor) FileExists(path string) bool {
	if m.FileExistsFunc != nil {
		return m.FileExistsFunc(path)
	}
	return true
}
