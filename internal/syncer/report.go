package syncer

import (
	"git.home.luguber.info/inful/fragsync/internal/fragment"
)

// Status is the outcome for one target file.
type Status string

const (
	StatusUpdated     Status = "updated"
	StatusWouldUpdate Status = "would_update"
	StatusUnchanged   Status = "unchanged"
	StatusSkipped     Status = "skipped"
	StatusError       Status = "error"
)

// Processed reports whether the status counts towards the processed total.
func (s Status) Processed() bool {
	return s == StatusUpdated || s == StatusWouldUpdate || s == StatusUnchanged
}

// Skip reasons.
const (
	ReasonMissing      = "file does not exist"
	ReasonNoBoundaries = "fragment boundaries not found"
	ReasonDirty        = "uncommitted changes"
	ReasonOutsideCanon = "outside the canonical document's directory"
)

// FileResult describes what happened to one target. Lengths are in characters.
type FileResult struct {
	Path    string
	Depth   int
	Status  Status
	Reason  string
	// Matcher names the start matcher that located the target fragment.
	Matcher string
	OldLen  int
	NewLen  int
	Err     error
}

// Report collects the results of one fragment run.
type Report struct {
	Kind      fragment.Kind
	Canonical string
	Fragment  string
	Preview   bool
	Files     []FileResult
}

func (r *Report) count(match func(Status) bool) int {
	n := 0
	for _, f := range r.Files {
		if match(f.Status) {
			n++
		}
	}
	return n
}

// Processed counts targets that were updated, would be updated or were already current.
func (r *Report) Processed() int { return r.count(Status.Processed) }

// Skipped counts targets left alone because they were missing, dirty or had no boundaries.
func (r *Report) Skipped() int {
	return r.count(func(s Status) bool { return s == StatusSkipped })
}

// Errors counts targets that failed to read, verify or write.
func (r *Report) Errors() int {
	return r.count(func(s Status) bool { return s == StatusError })
}

// Result returns the result for path, if the run touched it.
func (r *Report) Result(path string) (FileResult, bool) {
	for _, f := range r.Files {
		if f.Path == path {
			return f, true
		}
	}
	return FileResult{}, false
}
