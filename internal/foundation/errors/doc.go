// Package errors provides the classified error type used across fragsync.
//
// Errors carry a category (config, filesystem, fragment, git, ...), a severity and
// structured context. They are built through a fluent builder:
//
//	err := errors.NewError(errors.CategoryFragment, "footer not found in canonical document").
//		Fatal().
//		WithContext("path", canonicalPath).
//		WithCause(fragment.ErrStartNotFound).
//		Build()
//
// CLIErrorAdapter turns a classified error into a console message and an exit code.
package errors
