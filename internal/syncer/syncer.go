package syncer

import (
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
	"git.home.luguber.info/inful/fragsync/internal/fragment"
	"git.home.luguber.info/inful/fragsync/internal/logfields"
	"git.home.luguber.info/inful/fragsync/internal/metrics"
	"git.home.luguber.info/inful/fragsync/internal/rewrite"
	"git.home.luguber.info/inful/fragsync/internal/site"
)

// CleanChecker reports whether a target has no uncommitted changes.
type CleanChecker interface {
	IsClean(rel string) (bool, error)
}

// Syncer injects fragments into the pages of one site.
type Syncer struct {
	store    *site.Store
	preview  bool
	clean    CleanChecker
	recorder metrics.Recorder
	reporter Reporter
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithPreview computes results without writing any file.
func WithPreview(preview bool) Option {
	return func(s *Syncer) {
		s.preview = preview
	}
}

// WithCleanChecker skips targets the checker reports as dirty.
func WithCleanChecker(c CleanChecker) Option {
	return func(s *Syncer) {
		s.clean = c
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Syncer) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithReporter sets the console reporter.
func WithReporter(r Reporter) Option {
	return func(s *Syncer) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Syncer over fsys, which must be rooted at the site root.
func New(fsys billy.Filesystem, options ...Option) *Syncer {
	s := &Syncer{
		store:    site.NewStore(fsys),
		recorder: metrics.NoopRecorder{},
		reporter: NopReporter{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Run synchronizes one fragment kind from canonical into targets. Target
// problems are recorded in the report; an error is returned only when the
// canonical fragment cannot be obtained.
func (s *Syncer) Run(def fragment.Definition, canonical string, targets []site.Target) (*Report, error) {
	started := s.now()
	kind := string(def.Kind)
	log := s.logger.With(logfields.Fragment(kind), logfields.DryRun(s.preview))

	canonical = path.Clean(filepath.ToSlash(canonical))
	frag, err := s.extractCanonical(def, canonical)
	if err != nil {
		log.Error("Canonical fragment unavailable", logfields.Canonical(canonical), logfields.Error(err))
		return nil, err
	}

	report := &Report{
		Kind:      def.Kind,
		Canonical: canonical,
		Fragment:  frag,
		Preview:   s.preview,
		Files:     make([]FileResult, 0, len(targets)),
	}
	s.recorder.SetFragmentSize(kind, utf8.RuneCountInString(frag))
	log.Info("Extracted canonical fragment",
		logfields.Canonical(canonical),
		slog.Int("chars", utf8.RuneCountInString(frag)))
	s.reporter.Start(report, len(targets))

	base := path.Dir(canonical)
	for _, t := range targets {
		res := s.syncFile(def, frag, base, t)
		report.Files = append(report.Files, res)
		s.recorder.IncFileResult(kind, string(res.Status))
		s.logResult(log, res)
		s.reporter.File(report, res)
	}

	s.reporter.Finish(report)
	s.recorder.ObserveRunDuration(kind, s.now().Sub(started))
	s.recorder.SetLastRun(s.now())
	log.Info("Fragment sync complete",
		slog.Int("processed", report.Processed()),
		slog.Int("skipped", report.Skipped()),
		slog.Int("errors", report.Errors()))
	return report, nil
}

func (s *Syncer) extractCanonical(def fragment.Definition, canonical string) (string, error) {
	doc, err := s.store.Read(canonical)
	if err != nil {
		return "", errors.WrapError(err, readCategory(err), "could not read canonical document").
			Fatal().
			WithContext("path", canonical).
			Build()
	}
	frag, err := def.Extract(doc.Text)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFragment, "failed to extract "+string(def.Kind)+" from canonical document").
			Fatal().
			WithContext("path", canonical).
			Build()
	}
	return frag, nil
}

func readCategory(err error) errors.ErrorCategory {
	if c, ok := errors.AsClassified(err); ok {
		return c.Category()
	}
	return errors.CategoryFileSystem
}

func (s *Syncer) syncFile(def fragment.Definition, frag, base string, t site.Target) FileResult {
	res := FileResult{Path: t.Path, Depth: t.Depth}

	depth, ok := depthFrom(base, t.Path)
	if !ok {
		return skipped(res, ReasonOutsideCanon)
	}
	res.Depth = depth

	exists, err := s.store.Exists(t.Path)
	if err != nil {
		return failed(res, err)
	}
	if !exists {
		return skipped(res, ReasonMissing)
	}

	if s.clean != nil {
		clean, err := s.clean.IsClean(t.Path)
		if err != nil {
			return failed(res, err)
		}
		if !clean {
			return skipped(res, ReasonDirty)
		}
	}

	doc, err := s.store.Read(t.Path)
	if err != nil {
		return failed(res, err)
	}

	b, err := def.Locate(doc.Text)
	if err != nil {
		return skipped(res, ReasonNoBoundaries)
	}
	res.Matcher = b.Matcher

	rewritten := rewrite.Rewrite(frag, depth)
	out := fragment.Splice(doc.Text, b, rewritten)
	res.OldLen = utf8.RuneCountInString(doc.Text[b.Start:b.End])
	res.NewLen = utf8.RuneCountInString(rewritten)

	if err := verify(def, out, rewritten); err != nil {
		return failed(res, errors.WrapError(err, errors.CategoryFragment, "spliced document failed verification").
			WithContext("path", t.Path).
			Build())
	}

	switch {
	case out == doc.Text:
		res.Status = StatusUnchanged
	case s.preview:
		res.Status = StatusWouldUpdate
	default:
		if err := s.store.Write(doc, out); err != nil {
			return failed(res, err)
		}
		res.Status = StatusUpdated
	}
	return res
}

// verify re-locates the fragment in out and checks that it has the tag
// structure of the fragment that was inserted.
func verify(def fragment.Definition, out, inserted string) error {
	b, err := def.Locate(out)
	if err != nil {
		return err
	}
	if !fragment.SameShape(out[b.Start:b.End], inserted) {
		return errors.FragmentError("tag structure changed after splice").
			WithContext("offset", b.Start).
			Build()
	}
	return nil
}

// depthFrom counts the directory levels between base and rel. ok is false
// when rel lies outside base.
func depthFrom(base, rel string) (int, bool) {
	if base == "." {
		return site.Depth(rel), true
	}
	prefix := base + "/"
	if !strings.HasPrefix(rel, prefix) {
		return 0, false
	}
	return site.Depth(strings.TrimPrefix(rel, prefix)), true
}

func skipped(res FileResult, reason string) FileResult {
	res.Status = StatusSkipped
	res.Reason = reason
	return res
}

func failed(res FileResult, err error) FileResult {
	res.Status = StatusError
	res.Err = err
	return res
}

func (s *Syncer) logResult(log *slog.Logger, res FileResult) {
	attrs := []any{
		logfields.File(res.Path),
		logfields.Depth(res.Depth),
		logfields.Status(string(res.Status)),
	}
	switch res.Status {
	case StatusSkipped:
		log.Warn("Skipping target", append(attrs, logfields.Reason(res.Reason))...)
	case StatusError:
		log.Error("Target failed", append(attrs, logfields.Error(res.Err))...)
	default:
		log.Debug("Target processed", append(attrs, logfields.Matcher(res.Matcher), logfields.OldLen(res.OldLen), logfields.NewLen(res.NewLen))...)
	}
}
