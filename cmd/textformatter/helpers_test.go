package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	textformatter "github.com/alnah/go-textformatter"
	"github.com/alnah/go-textformatter/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and pool
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a fixed result or error.
type mockConverter struct {
	mu     sync.Mutex
	inputs []textformatter.Input
	result *textformatter.ConvertResult
	err    error
}

func (m *mockConverter) Convert(_ context.Context, input textformatter.Input) (*textformatter.ConvertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &textformatter.ConvertResult{
		HTML: []byte("<p>" + input.Text + "</p>"),
		PDF:  []byte("%PDF-1.4 mock"),
	}, nil
}

func (m *mockConverter) calls() []textformatter.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]textformatter.Input(nil), m.inputs...)
}

// testPool hands out a single shared mock converter.
type testPool struct {
	conv       CLIConverter
	size       int
	acquireErr error
	mu         sync.Mutex
	acquired   int
	released   int
	closed     bool
}

func newTestPool(conv CLIConverter, size int) *testPool {
	return &testPool{conv: conv, size: size}
}

func (p *testPool) Acquire() (CLIConverter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *testPool) Release(CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *testPool) Size() int {
	return p.size
}

func (p *testPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv is an Environment writing to buffers, rooted at wd.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(wd string) *testEnv {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:     func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
			Stdout:  stdout,
			Stderr:  stderr,
			Config:  config.DefaultConfig(),
			NewPool: newConverterPool,
			Getwd:   func() (string, error) { return wd, nil },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// withPool makes the environment hand out pool instead of real converters.
func (e *testEnv) withPool(pool Pool) *testEnv {
	e.NewPool = func(int, ...textformatter.Option) Pool { return pool }
	return e
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

var errMock = errors.New("mock conversion failure")
