package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/render/stream"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Stream the layout to websocket clients",
		Long: `Run the layout headless and broadcast every frame as JSON on /ws.

Clients may send {"op":"pointer","x":..,"y":..}, {"op":"arena","width":..,"height":..}
or {"op":"drop","id":..}. Metrics are served on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
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

			hub := stream.NewHub(s, s.Metrics(), logger)
			defer hub.Close()
			s.AddRenderer(hub)

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           stream.NewMux(hub, s.Metrics()),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			loopErr := make(chan error, 1)
			go func() { loopErr <- s.Run(ctx, cfg.Tick.Interval) }()

			serveErr := make(chan error, 1)
			go func() {
				logger.Info("serving frames", "addr", cfg.Server.Addr)
				serveErr <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
			case err := <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					cancel()
					<-loopErr
					return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
				}
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server shutdown incomplete", "error", err)
			}
			cancel()
			return <-loopErr
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides config)")
	return cmd
}
