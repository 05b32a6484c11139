package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FileSpec describes a file to create for a test.
type FileSpec struct {
	// Path is relative to the test directory.
	Path    string
	Content string
}

// MustWriteTestFiles writes the given files under a fresh temporary directory
// and returns the directory and the absolute filenames.
func MustWriteTestFiles(t *testing.T, files []FileSpec) (dir string, filenames []string) {
	t.Helper()
	dir = t.TempDir()
	for _, file := range files {
		abs := filepath.Join(dir, file.Path)
		if err := os.MkdirAll(filepath.Dir(abs), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(file.Content), 0644); err != nil {
			t.Fatal(err)
		}
		filenames = append(filenames, abs)
	}
	return dir, filenames
}

// MustReadTestFile reads a file relative to dir.
func MustReadTestFile(t *testing.T, dir string, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatal("reading", filename, ":", err)
	}
	return string(data)
}

// EqualError reports whether the errors are both nil or have the same
// message.
func EqualError(a, b error) bool {
	return a == nil && b == nil || a != nil && b != nil && a.Error() == b.Error()
}

// ExpectError asserts that the errors are equal.  Return value is true
// if the "want" argument is non-nil.
func ExpectError(t *testing.T, want, got error) bool {
	t.Helper()
	if !EqualError(want, got) {
		t.Fatal("errors: want:", want, "got:", got)
	}
	return want != nil
}
