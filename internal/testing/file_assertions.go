package testing

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// FileAssertions provides utilities for asserting site file state in tests.
type FileAssertions struct {
	t  *testing.T
	fs billy.Filesystem
}

// NewFileAssertions creates a new file assertions helper over fs.
func NewFileAssertions(t *testing.T, fs billy.Filesystem) *FileAssertions {
	return &FileAssertions{t: t, fs: fs}
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	if _, err := fa.fs.Stat(relativePath); err != nil {
		fa.t.Errorf("Expected file to exist: %s", relativePath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	if _, err := fa.fs.Stat(relativePath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", relativePath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if ok && !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, content)
	}
	return fa
}

// AssertFileNotContains validates that a file does not contain content
func (fa *FileAssertions) AssertFileNotContains(relativePath, unexpected string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if ok && strings.Contains(content, unexpected) {
		fa.t.Errorf("Expected file %s not to contain %q\nActual content:\n%s",
			relativePath, unexpected, content)
	}
	return fa
}

// AssertFileEquals validates the exact content of a file
func (fa *FileAssertions) AssertFileEquals(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	content, ok := fa.read(relativePath)
	if ok && content != expected {
		fa.t.Errorf("File %s differs\nExpected:\n%s\nActual:\n%s", relativePath, expected, content)
	}
	return fa
}

// GetFileContent reads and returns the content of a file
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	data, err := util.ReadFile(fa.fs, relativePath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", relativePath, err)
	}
	return string(data)
}

func (fa *FileAssertions) read(relativePath string) (string, bool) {
	fa.t.Helper()
	data, err := util.ReadFile(fa.fs, relativePath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", relativePath, err)
		return "", false
	}
	return string(data), true
}
