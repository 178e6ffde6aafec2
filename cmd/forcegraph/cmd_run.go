package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/forcegraph/audio"
	"github.com/lixenwraith/forcegraph/render/terminal"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the layout in the terminal",
		Long: `Run the layout interactively in the terminal.

The arena follows the terminal size. Move the mouse to attract tagged nodes.
Keys: p pause, e toggle edges, d drop the node nearest the pointer, q quit.
Logs go to the configured log file since the screen owns the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if sound, _ := cmd.Flags().GetBool("sound"); sound {
				cfg.Audio.Enabled = true
			}

			logger, closeLog, err := openLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			s, err := newSimulation(cfg, logger, cfg.ArenaExtent())
			if err != nil {
				return err
			}

			view := terminal.New(screen, s, terminal.Options{Logger: logger})
			if err := view.Attach(); err != nil {
				return fmt.Errorf("sizing arena: %w", err)
			}
			if _, err := populate(s, cfg.Graph); err != nil {
				return err
			}
			s.AddRenderer(view)

			if cfg.Audio.Enabled {
				player := audio.NewPlayer(audio.Options{Volume: cfg.Audio.Volume, Logger: logger})
				if err := player.Initialize(); err != nil {
					// Non-fatal, the layout runs without sound
					logger.Warn("audio initialization failed", "error", err)
				} else {
					defer player.Close()
					s.AddRenderer(player)
				}
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.Run(ctx, cfg.Tick.Interval); err != nil {
					logger.Error("simulation loop failed", "error", err)
				}
			}()

			view.Run(ctx)
			cancel()
			wg.Wait()

			logger.Info("session ended", "frames", s.Frame().Number, "arena", s.ArenaStatistics())
			return nil
		},
	}

	cmd.Flags().Bool("sound", false, "Click on boundary bounces (overrides config)")
	return cmd
}
