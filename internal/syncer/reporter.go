package syncer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Reporter receives progress events for human-readable output.
type Reporter interface {
	Start(r *Report, targets int)
	File(r *Report, res FileResult)
	Finish(r *Report)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Start(*Report, int)       {}
func (NopReporter) File(*Report, FileResult) {}
func (NopReporter) Finish(*Report)           {}

const (
	rule         = "============================================================"
	previewChars = 60
)

// TextReporter prints a console report in the layout operators expect from
// the sync scripts: banner, fragment preview, one block per file, summary.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter writes to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (t *TextReporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.w, format, args...)
}

func (t *TextReporter) Start(r *Report, targets int) {
	if r.Preview {
		t.printf("%s\nDRY RUN MODE - No files will be modified\n%s\n", rule, rule)
	}
	t.printf("\nReading %s from: %s\n", r.Kind, r.Canonical)
	t.printf("Extracted %s: %d characters\n", r.Kind, utf8.RuneCountInString(r.Fragment))
	t.printf("\n%s preview:\n", r.Kind.Title())
	t.printf("  Starts: %s...\n", head(r.Fragment, previewChars))
	t.printf("  Ends:   ...%s\n", tail(r.Fragment, previewChars))
	t.printf("\n%s\nProcessing %d files...\n%s\n", rule, targets, rule)
}

func (t *TextReporter) File(r *Report, res FileResult) {
	t.printf("\n%s:\n", res.Path)
	switch res.Status {
	case StatusUpdated:
		t.printf("  SUCCESS: %s replaced (%d -> %d chars)\n", r.Kind.Title(), res.OldLen, res.NewLen)
	case StatusWouldUpdate:
		t.printf("  Would replace %s (%d chars -> %d chars)\n", r.Kind, res.OldLen, res.NewLen)
	case StatusUnchanged:
		t.printf("  UNCHANGED: %s already up to date\n", r.Kind.Title())
	case StatusSkipped:
		t.printf("  SKIP: %s\n", capitalize(res.Reason))
	case StatusError:
		t.printf("  ERROR: %v\n", res.Err)
	}
}

func (t *TextReporter) Finish(r *Report) {
	t.printf("\n%s\nSUMMARY\n%s\n", rule, rule)
	t.printf("  Processed: %d\n", r.Processed())
	t.printf("  Skipped:   %d\n", r.Skipped())
	t.printf("  Errors:    %d\n", r.Errors())
	if r.Preview {
		t.printf("\nRun without --dry-run to apply changes.\n")
		return
	}
	t.printf("\nDone! All %ss have been synchronized.\n", r.Kind)
}

func head(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}
