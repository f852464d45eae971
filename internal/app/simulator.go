package app

import (
	"context"
	"time"

	"github.com/acmehome/fieldops/internal/bg"
)

// LocationSimulator advances en-route technicians toward their destinations
// on a fixed tick, so locations keep drifting between client polls.
type LocationSimulator struct {
	Service  *TechnicianService
	Interval time.Duration
	Runner   bg.Runner
}

// Start launches the tick loop through the configured runner. The loop stops
// when ctx is cancelled. With bg.Async this returns immediately; with bg.Sync
// it blocks until cancellation, which is only useful in tests.
func (s *LocationSimulator) Start(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	s.Runner.Do(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Service.AdvanceEnRoute()
			}
		}
	})
}
