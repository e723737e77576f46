package commands

import (
	"fmt"

	"git.home.luguber.info/inful/fragsync/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing configuration file"`
	Root  string `help:"Site root, relative to the configuration file" default:"."`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g, root.Config, i.Root, i.Force)
}

// RunInit writes a starter configuration and reports what it found.
func RunInit(g *Global, configPath, siteRoot string, force bool) error {
	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", configPath)
	cfg, err := config.Init(configPath, siteRoot, force)
	if err != nil {
		_, _ = fmt.Fprintln(g.Stdout, "Initialization failed")
		return err
	}
	if len(cfg.Targets) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "No pages found besides the canonical page; add targets before running sync")
		return nil
	}
	_, _ = fmt.Fprintf(g.Stdout, "Listed %d target pages\n", len(cfg.Targets))
	for _, t := range cfg.Targets {
		_, _ = fmt.Fprintf(g.Stdout, "  %s\n", t)
	}
	return nil
}
