package metrics

import "time"

// Recorder defines observability hooks for a sync run. Labels are plain
// strings so callers do not depend on this package's types.
type Recorder interface {
	IncFileResult(fragment, status string)
	ObserveRunDuration(fragment string, d time.Duration)
	SetFragmentSize(fragment string, chars int)
	SetLastRun(t time.Time)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFileResult(string, string)             {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) SetFragmentSize(string, int)              {}
func (NoopRecorder) SetLastRun(time.Time)                     {}
