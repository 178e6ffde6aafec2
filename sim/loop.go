package sim

import (
	"context"
	"errors"
	"time"
)

// Run ticks the simulation every interval until ctx is cancelled
// Ticks are skipped while paused; a rejected tick is logged and the loop continues
func (s *Simulation) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("tick interval must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("simulation loop started", "interval", interval)
	defer func() {
		s.logger.Info("simulation loop stopped", "frames", s.statTicks.Load(), "paused", s.PausedFor())
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if s.Paused() {
				continue
			}
			if err := s.Tick(); err != nil {
				s.logger.Warn("tick failed", "error", err)
			}
		}
	}
}
