package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinemax/internal/data/entity"
	"cinemax/internal/data/repository"
	"cinemax/internal/dto/request"
	"cinemax/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Booking: utils.BookingConfig{
			HoldTTLMinutes:       10,
			SweepIntervalSeconds: 60,
		},
		Pricing: utils.PricingConfig{VIPPriceFactor: 1.5},
	}
}

// seedShowtime creates a screen with a 5x10 layout and a showtime at 250.0
// current price, two hours out.
func seedShowtime(t *testing.T, store *memStore, clock *testClock) *entity.Showtime {
	t.Helper()

	screen := &entity.Screen{
		Base:        entity.Base{ID: uuid.New()},
		TheaterID:   uuid.New(),
		Name:        "Screen 1",
		Capacity:    50,
		Rows:        5,
		SeatsPerRow: 10,
	}
	require.NoError(t, (&fakeScreenRepo{store}).Create(context.Background(), screen))

	showtime := &entity.Showtime{
		Base:          entity.Base{ID: uuid.New()},
		MovieID:       uuid.New(),
		ScreenID:      screen.ID,
		StartTime:     clock.Now().Add(2 * time.Hour),
		BasePrice:     250,
		CurrentPrice:  250,
		PricingSource: entity.PricingSourceBase,
	}
	require.NoError(t, (&fakeShowtimeRepo{store}).Create(context.Background(), showtime))

	return showtime
}

func holdRequest(showtimeID uuid.UUID, seats ...request.SeatRequest) *request.CreateHoldRequest {
	return &request.CreateHoldRequest{
		ShowtimeID: showtimeID.String(),
		Seats:      seats,
	}
}

func TestRequestHold(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewHoldService(repo, testConfig(), zap.NewNop(), clock.Now)

	t.Run("holds a seat batch with tier prices", func(t *testing.T) {
		resp, err := svc.RequestHold(ctx, "user-1", holdRequest(showtime.ID,
			request.SeatRequest{Row: "A", Number: 1}, // vip
			request.SeatRequest{Row: "C", Number: 3}, // regular
		))
		require.NoError(t, err)
		require.Len(t, resp.Seats, 2)

		assert.Equal(t, entity.SeatTierVIP, resp.Seats[0].Tier)
		assert.Equal(t, 375.0, resp.Seats[0].UnitPrice)
		assert.Equal(t, entity.SeatTierRegular, resp.Seats[1].Tier)
		assert.Equal(t, 250.0, resp.Seats[1].UnitPrice)
		assert.Equal(t, 625.0, resp.TotalAmount)
		assert.Equal(t, clock.Now().Add(10*time.Minute), resp.ExpiresAt)
	})

	t.Run("rejects a batch overlapping a live hold", func(t *testing.T) {
		_, err := svc.RequestHold(ctx, "user-2", holdRequest(showtime.ID,
			request.SeatRequest{Row: "C", Number: 3},
			request.SeatRequest{Row: "C", Number: 4},
		))
		require.ErrorIs(t, err, entity.ErrSeatUnavailable)

		// All-or-nothing: the non-conflicting seat stays free.
		resp, err := svc.RequestHold(ctx, "user-2", holdRequest(showtime.ID,
			request.SeatRequest{Row: "C", Number: 4},
		))
		require.NoError(t, err)
		assert.Len(t, resp.Seats, 1)
	})

	t.Run("rejects seats outside the layout", func(t *testing.T) {
		_, err := svc.RequestHold(ctx, "user-3", holdRequest(showtime.ID,
			request.SeatRequest{Row: "Z", Number: 1},
		))
		require.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("rejects duplicate seats within one request", func(t *testing.T) {
		_, err := svc.RequestHold(ctx, "user-3", holdRequest(showtime.ID,
			request.SeatRequest{Row: "D", Number: 1},
			request.SeatRequest{Row: "D", Number: 1},
		))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate seat")
	})

	t.Run("unknown showtime", func(t *testing.T) {
		_, err := svc.RequestHold(ctx, "user-3", holdRequest(uuid.New(),
			request.SeatRequest{Row: "A", Number: 2},
		))
		require.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestRequestHoldExpiryFreesSeat(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewHoldService(repo, testConfig(), zap.NewNop(), clock.Now)

	_, err := svc.RequestHold(ctx, "user-1", holdRequest(showtime.ID,
		request.SeatRequest{Row: "B", Number: 5},
	))
	require.NoError(t, err)

	// Still inside the TTL the seat is blocked.
	clock.Advance(9 * time.Minute)
	_, err = svc.RequestHold(ctx, "user-2", holdRequest(showtime.ID,
		request.SeatRequest{Row: "B", Number: 5},
	))
	require.ErrorIs(t, err, entity.ErrSeatUnavailable)

	// Past the TTL the lapsed hold no longer blocks, sweep or not.
	clock.Advance(2 * time.Minute)
	resp, err := svc.RequestHold(ctx, "user-2", holdRequest(showtime.ID,
		request.SeatRequest{Row: "B", Number: 5},
	))
	require.NoError(t, err)
	assert.Len(t, resp.Seats, 1)
}

func TestRequestHoldConcurrentOverlap(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewHoldService(repo, testConfig(), zap.NewNop(), clock.Now)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RequestHold(ctx, "user", holdRequest(showtime.ID,
				request.SeatRequest{Row: "E", Number: 7},
			))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, entity.ErrSeatUnavailable)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent hold must win")
}

func TestReleaseHold(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewHoldService(repo, testConfig(), zap.NewNop(), clock.Now)

	resp, err := svc.RequestHold(ctx, "user-1", holdRequest(showtime.ID,
		request.SeatRequest{Row: "A", Number: 1},
	))
	require.NoError(t, err)

	t.Run("only the holder may release", func(t *testing.T) {
		err := svc.ReleaseHold(ctx, "user-2", resp.GroupID)
		require.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("release frees the seat immediately", func(t *testing.T) {
		require.NoError(t, svc.ReleaseHold(ctx, "user-1", resp.GroupID))

		again, err := svc.RequestHold(ctx, "user-2", holdRequest(showtime.ID,
			request.SeatRequest{Row: "A", Number: 1},
		))
		require.NoError(t, err)
		assert.Len(t, again.Seats, 1)
	})

	t.Run("release is idempotent", func(t *testing.T) {
		require.NoError(t, svc.ReleaseHold(ctx, "user-1", resp.GroupID))
	})
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewHoldService(repo, testConfig(), zap.NewNop(), clock.Now)

	resp, err := svc.RequestHold(ctx, "user-1", holdRequest(showtime.ID,
		request.SeatRequest{Row: "A", Number: 1},
		request.SeatRequest{Row: "A", Number: 2},
	))
	require.NoError(t, err)

	swept, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, swept)

	clock.Advance(11 * time.Minute)
	swept, err = svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, swept)

	groupID := uuid.MustParse(resp.GroupID)
	holds, err := repo.Hold.FindByGroupID(ctx, groupID)
	require.NoError(t, err)
	for _, h := range holds {
		assert.Equal(t, entity.HoldStateExpired, h.State)
	}
}

var _ repository.HoldRepository = (*fakeHoldRepo)(nil)

func TestConsumedHoldBlocksBeforeBookingExists(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewHoldService(repo, testConfig(), zap.NewNop(), clock.Now)

	resp, err := svc.RequestHold(ctx, "user-1", holdRequest(showtime.ID,
		request.SeatRequest{Row: "C", Number: 7},
	))
	require.NoError(t, err)

	// Consume the group without inserting a booking, the state between the
	// consume commit and the booking insert.
	_, err = repo.Hold.ConsumeGroup(ctx, uuid.MustParse(resp.GroupID), clock.Now())
	require.NoError(t, err)

	_, err = svc.RequestHold(ctx, "user-2", holdRequest(showtime.ID,
		request.SeatRequest{Row: "C", Number: 7},
	))
	require.ErrorIs(t, err, entity.ErrSeatUnavailable)
}
