package workers

import (
	"context"
	"time"

	"github.com/acortes/biblioteca/internal/app/services"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// ReservationSweeper periodically expires pending reservations whose expiry
// date has passed. Expiry is enforced lazily by the sweep, not per request.
type ReservationSweeper struct {
	reservations services.ReservationService
	interval     time.Duration
}

// NewReservationSweeper creates a new sweeper running at the given interval
func NewReservationSweeper(reservations services.ReservationService, interval time.Duration) *ReservationSweeper {
	return &ReservationSweeper{
		reservations: reservations,
		interval:     interval,
	}
}

// Start launches the sweep loop in a goroutine. One sweep runs immediately;
// the loop stops when the context is cancelled.
func (s *ReservationSweeper) Start(ctx context.Context) {
	go func() {
		logger.Info().Dur("interval", s.interval).Msg("Reservation sweeper started")

		s.sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info().Msg("Reservation sweeper stopped")
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *ReservationSweeper) sweep(ctx context.Context) {
	if _, err := s.reservations.ExpireOverdue(ctx); err != nil {
		logger.Error().Err(err).Msg("Reservation sweep failed")
	}
}
