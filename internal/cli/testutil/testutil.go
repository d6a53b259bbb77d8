// Package testutil provides helpers for CLI command testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlgen/internal/cli/output"
)

// SetupTestProject creates a temporary project with a templates
// directory holding one valid SQL template, and returns its root.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	templatesDir := filepath.Join(tmpDir, "templates")
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		t.Fatalf("failed to create templates directory: %v", err)
	}

	users := `# UserRepository
#get_user_by_id
SELECT id, username, email FROM users WHERE id = :user_id;

#create_user
INSERT INTO users (username, email) VALUES (:username, :email) RETURNING id;
`
	if err := os.WriteFile(filepath.Join(templatesDir, "users.sql"), []byte(users), 0o644); err != nil {
		t.Fatalf("failed to create users.sql: %v", err)
	}

	return tmpDir
}

// TestRenderer wraps a Renderer with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a renderer in the given mode whose output is
// captured for inspection. Auto mode resolves to markdown here, since
// a buffer is never a TTY.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns captured stdout as a string.
func (tr *TestRenderer) Output() string { return tr.Out.String() }

// ErrorOutput returns captured stderr as a string.
func (tr *TestRenderer) ErrorOutput() string { return tr.ErrOut.String() }
