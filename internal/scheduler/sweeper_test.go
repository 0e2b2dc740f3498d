package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingHolds struct{ calls atomic.Int64 }

func (c *countingHolds) SweepExpired(context.Context) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

type countingBookings struct{ calls atomic.Int64 }

func (c *countingBookings) ExpireStale(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestSweeperRunsUntilCancelled(t *testing.T) {
	holds := &countingHolds{}
	bookings := &countingBookings{}
	sweeper := NewSweeper(holds, bookings, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return holds.calls.Load() >= 2 && bookings.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
}
