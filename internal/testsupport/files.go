package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFixture writes content to name under dir, creating parents as needed,
// and returns the full path.
func WriteFixture(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
