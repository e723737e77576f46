package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID     = "run_id"
	KeyFragment  = "fragment"
	KeyFile      = "file"
	KeyCanonical = "canonical"
	KeyDepth     = "depth"
	KeyStatus    = "status"
	KeyReason    = "reason"
	KeyOldLen    = "old_len"
	KeyNewLen    = "new_len"
	KeyMatcher   = "matcher"
	KeyDryRun    = "dry_run"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Fragment(kind string) slog.Attr  { return slog.String(KeyFragment, kind) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Canonical(path string) slog.Attr { return slog.String(KeyCanonical, path) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func OldLen(n int) slog.Attr          { return slog.Int(KeyOldLen, n) }
func NewLen(n int) slog.Attr          { return slog.Int(KeyNewLen, n) }
func Matcher(name string) slog.Attr   { return slog.String(KeyMatcher, name) }
func DryRun(b bool) slog.Attr         { return slog.Bool(KeyDryRun, b) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
