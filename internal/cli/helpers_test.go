package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// testDB returns a database path inside a fresh temp data directory.
func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "base.db")
}

// runCLI executes the root command against db and returns stdout.
func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--db", db}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// mustRun executes the command and fails the test on error.
func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, db, args...)
	if err != nil {
		t.Fatalf("lawbook %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// seedCatalog adds three well-known laws.
func seedCatalog(t *testing.T, db string) {
	t.Helper()
	mustRun(t, db, "add", "Newton's Second Law", "--formula", "F = m*a", "--section", "Mechanics")
	mustRun(t, db, "add", "Ohm's Law", "--formula", "V = I*R", "--section", "Electricity")
	mustRun(t, db, "add", "Pythagorean Theorem", "--formula", "a^2 + b^2 = c^2", "--section", "Geometry")
}

// writeFile writes content to path.
func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
