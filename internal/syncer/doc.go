// Package syncer copies a fragment from a canonical page into target pages.
//
// A Syncer runs one fragment kind at a time: it extracts the fragment from
// the canonical document once, then for every target it locates the same
// fragment, rewrites relative paths for the target's depth and splices the
// result in place. Per-file problems are recorded in the Report and never
// stop the run; only a canonical document that cannot be read or extracted
// is fatal.
package syncer
