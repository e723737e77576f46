package integration

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository from a directory structure.
// The repository is initialized with an initial commit containing all files.
func setupTestRepo(t *testing.T, sitePath string) string {
	t.Helper()

	tmpDir := t.TempDir()

	err := copyDir(sitePath, tmpDir)
	require.NoError(t, err, "failed to copy test site files")

	_, err = git.PlainInit(tmpDir, false)
	require.NoError(t, err, "failed to initialize git repo")

	commitAll(t, tmpDir, "Initial test commit")
	return tmpDir
}

// commitAll stages every file in the worktree and commits it.
func commitAll(t *testing.T, dir, msg string) {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err, "failed to open git repo")

	w, err := repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	err = w.AddGlob(".")
	require.NoError(t, err, "failed to add files to git")

	_, err = w.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err, "failed to commit")
}

// copyDir recursively copies a directory tree.
func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if strings.Contains(relPath, ".git") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		targetPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(targetPath, 0o750)
		}

		return copyFile(path, targetPath)
	})
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	// #nosec G304 -- test utility with paths from test setup, not user input
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	// #nosec G304 -- test utility with paths from test setup, not user input
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// verifyGolden compares actual against the golden file, rewriting the golden
// file instead when updateGolden is set.
func verifyGolden(t *testing.T, actual []byte, goldenPath string, updateGolden bool) {
	t.Helper()

	if updateGolden {
		err := os.MkdirAll(filepath.Dir(goldenPath), 0o750)
		require.NoError(t, err, "failed to create golden directory")

		err = os.WriteFile(goldenPath, actual, 0o600)
		require.NoError(t, err, "failed to write golden file")

		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	// #nosec G304 -- test utility reading golden file from testdata
	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file: %s", goldenPath)

	require.Equal(t, string(expected), string(actual), "mismatch against %s", goldenPath)
}

// readSiteFile reads a slash-separated path below dir.
func readSiteFile(t *testing.T, dir, rel string) []byte {
	t.Helper()

	// #nosec G304 -- test utility reading from test output directory
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err, "failed to read %s", rel)
	return data
}
