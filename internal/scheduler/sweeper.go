package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type holdSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type bookingExpirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

// Sweeper periodically expires lapsed holds and stale bookings. Expiry is
// lazy at every read path already, so a missed tick only delays cleanup.
type Sweeper struct {
	holds    holdSweeper
	bookings bookingExpirer
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(holds holdSweeper, bookings bookingExpirer, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		holds:    holds,
		bookings: bookings,
		interval: interval,
		log:      log.With(zap.String("component", "sweeper")),
	}
}

// Start blocks until ctx is cancelled, running one sweep per interval.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.holds.SweepExpired(ctx); err != nil {
		s.log.Error("Hold sweep failed", zap.Error(err))
	}
	if _, err := s.bookings.ExpireStale(ctx); err != nil {
		s.log.Error("Booking expiry sweep failed", zap.Error(err))
	}
}
