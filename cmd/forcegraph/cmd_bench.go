package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/status"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Step the layout headless and report tick timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			frames, _ := cmd.Flags().GetInt("frames")
			dt, _ := cmd.Flags().GetDuration("dt")
			mode, _ := cmd.Flags().GetString("profile")
			dir, _ := cmd.Flags().GetString("profile-dir")
			if cmd.Flags().Changed("nodes") {
				cfg.Graph.Nodes, _ = cmd.Flags().GetInt("nodes")
			}
			if cmd.Flags().Changed("edges") {
				cfg.Graph.Edges, _ = cmd.Flags().GetInt("edges")
			}
			if frames <= 0 {
				return fmt.Errorf("frames must be positive, got %d", frames)
			}

			logger, closeLog, err := openLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			s, err := newSimulation(cfg, logger, core.Extent{})
			if err != nil {
				return err
			}
			if _, err := populate(s, cfg.Graph); err != nil {
				return err
			}

			switch mode {
			case "":
			case "cpu":
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet).Stop()
			case "mem":
				defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet).Stop()
			default:
				return fmt.Errorf("unknown profile mode %q (valid: cpu, mem)", mode)
			}

			start := time.Now()
			for range frames {
				if err := s.TickElapsed(dt); err != nil {
					return err
				}
			}
			wall := time.Since(start)

			writeBenchReport(cmd.OutOrStdout(), frames, wall, s.Metrics())
			return nil
		},
	}

	cmd.Flags().Int("frames", 600, "Number of ticks to run")
	cmd.Flags().Duration("dt", 16*time.Millisecond, "Elapsed time per tick")
	cmd.Flags().Int("nodes", 0, "Node count (overrides config)")
	cmd.Flags().Int("edges", 0, "Edge count (overrides config)")
	cmd.Flags().String("profile", "", "Capture a profile: cpu or mem")
	cmd.Flags().String("profile-dir", ".", "Directory for profile output")
	return cmd
}

func writeBenchReport(w io.Writer, frames int, wall time.Duration, reg *status.Registry) {
	perTick := wall / time.Duration(frames)
	fmt.Fprintf(w, "frames     %d\n", frames)
	fmt.Fprintf(w, "wall       %v\n", wall.Round(time.Microsecond))
	fmt.Fprintf(w, "per tick   %v\n", perTick.Round(time.Microsecond))
	fmt.Fprintf(w, "peak tick  %.0fus\n", reg.Floats.Get(status.TickPeakUs).Get())
	fmt.Fprintf(w, "nodes      %d\n", reg.Ints.Get(status.EntityNodes).Load())
	fmt.Fprintf(w, "edges      %d\n", reg.Ints.Get(status.EntityEdges).Load())
	fmt.Fprintf(w, "pairs      %d\n", reg.Ints.Get(status.CoulombPairs).Load())
	fmt.Fprintf(w, "removed    %d\n", reg.Ints.Get(status.EntityRemoved).Load())
	fmt.Fprintf(w, "overbudget %d\n", reg.Ints.Get(status.TickOverBudget).Load())
}
