// Package testing contains fixtures and assertion helpers shared by tests.
package testing

const (
	// testFilePermissions is the permission mode for fixture files.
	testFilePermissions = 0o644
)
