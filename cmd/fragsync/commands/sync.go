package commands

import (
	"os"

	"github.com/go-git/go-billy/v5/osfs"

	"git.home.luguber.info/inful/fragsync/internal/config"
	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
	"git.home.luguber.info/inful/fragsync/internal/fragment"
	"git.home.luguber.info/inful/fragsync/internal/gitguard"
	"git.home.luguber.info/inful/fragsync/internal/logfields"
	"git.home.luguber.info/inful/fragsync/internal/metrics"
	"git.home.luguber.info/inful/fragsync/internal/syncer"
)

// SyncCmd implements the 'sync' command.
type SyncCmd struct {
	DryRun       bool     `name:"dry-run" help:"Report what would change without writing any file"`
	Fragment     []string `name:"fragment" short:"f" help:"Only sync this fragment kind (footer or navbar); repeatable"`
	RequireClean bool     `name:"require-clean" help:"Skip targets with uncommitted git changes"`
	MetricsFile  string   `name:"metrics-file" help:"Write Prometheus textfile metrics to this path after the run"`
}

func (s *SyncCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	kinds, err := parseKinds(s.Fragment)
	if err != nil {
		return err
	}
	return RunSync(g, cfg, SyncOptions{
		DryRun:       s.DryRun,
		Kinds:        kinds,
		RequireClean: s.RequireClean || cfg.Safety.RequireClean,
		MetricsFile:  firstNonEmpty(s.MetricsFile, cfg.MetricsFile()),
	})
}

// SyncOptions are the resolved run settings after flags override config.
type SyncOptions struct {
	DryRun       bool
	Kinds        []fragment.Kind
	RequireClean bool
	MetricsFile  string
}

// RunSync synchronizes every selected fragment. Per-file skips and errors are
// reported but do not fail the run.
func RunSync(g *Global, cfg *config.Config, opts SyncOptions) error {
	defs, err := cfg.Definitions(opts.Kinds...)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid fragment configuration").Fatal().Build()
	}
	if len(defs) == 0 {
		return errors.ValidationError("none of the requested fragments is configured").
			WithContext("requested", opts.Kinds).
			Build()
	}
	targets, err := cfg.TargetList()
	if err != nil {
		return err
	}

	siteRoot := cfg.SiteRoot()
	if fi, err := os.Stat(siteRoot); err != nil || !fi.IsDir() {
		return errors.ConfigError("site root is not a directory").
			WithContext("path", siteRoot).
			Build()
	}

	logger := g.Logger.With(logfields.DryRun(opts.DryRun))
	options := []syncer.Option{
		syncer.WithPreview(opts.DryRun),
		syncer.WithLogger(logger),
		syncer.WithReporter(syncer.NewTextReporter(g.Stdout)),
	}

	if opts.RequireClean {
		guard, err := gitguard.Open(siteRoot)
		if err != nil {
			return err
		}
		options = append(options, syncer.WithCleanChecker(guard))
	}

	var recorder *metrics.PrometheusRecorder
	if opts.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		options = append(options, syncer.WithRecorder(recorder))
	}

	s := syncer.New(osfs.New(siteRoot), options...)
	var runErr error
	for _, def := range defs {
		if _, runErr = s.Run(def, cfg.CanonicalPath(), targets); runErr != nil {
			break
		}
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
			werr := errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
				WithContext("path", opts.MetricsFile).
				Build()
			if runErr != nil {
				logger.Error("Metrics export failed", logfields.Error(werr))
				return runErr
			}
			return werr
		}
	}
	return runErr
}

func parseKinds(names []string) ([]fragment.Kind, error) {
	kinds := make([]fragment.Kind, 0, len(names))
	for _, n := range names {
		k, err := fragment.ParseKind(n)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "invalid --fragment value").
				Fatal().
				WithContext("value", n).
				Build()
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
