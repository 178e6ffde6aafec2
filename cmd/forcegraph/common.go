package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/forcegraph/config"
	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/logging"
	"github.com/lixenwraith/forcegraph/sim"
)

// loadConfig resolves the config file and applies logging flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if file, _ := cmd.Flags().GetString("log-file"); file != "" {
		cfg.Logging.File = file
	}
	return cfg, nil
}

// openLogger returns a logger per config, falling back to w when no file is configured
func openLogger(cfg *config.Config, w io.Writer) (*slog.Logger, func() error, error) {
	logger, closeFn, err := logging.Open(cfg.Logging.Level, cfg.Logging.File, w)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	return logger, closeFn, nil
}

// newSimulation builds a simulation from config; a zero arena keeps the configured one
func newSimulation(cfg *config.Config, logger *slog.Logger, arena core.Extent) (*sim.Simulation, error) {
	if arena.Width == 0 && arena.Height == 0 {
		arena = cfg.ArenaExtent()
	}
	s, err := sim.New(sim.Options{
		Params:      cfg.PhysicsParams(),
		Arena:       arena,
		Logger:      logger,
		FrameBudget: cfg.Tick.Budget,
	})
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}
	return s, nil
}

// populate spawns the configured demo graph
func populate(s *sim.Simulation, g config.GraphConfig) (sim.Populated, error) {
	return sim.Populate(s, sim.PopulateOptions{
		Nodes:        g.Nodes,
		Edges:        g.Edges,
		Charge:       g.Charge,
		RestLength:   g.RestLength,
		Stiffness:    g.Stiffness,
		HalfExtent:   g.HalfExtent,
		MaxSpeed:     g.MaxSpeed,
		MouseAttract: g.MouseAttract,
		Seed:         g.Seed,
	})
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
