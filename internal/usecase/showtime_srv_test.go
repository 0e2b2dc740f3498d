package usecase

import (
	"context"
	"testing"
	"time"

	"cinemax/internal/data/entity"
	"cinemax/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetShowtimeDetail(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	holds := NewHoldService(repo, testConfig(), zap.NewNop(), clock.Now)
	svc := NewShowtimeService(repo, testConfig(), zap.NewNop(), clock.Now)

	_, err := holds.RequestHold(ctx, "user-1", holdRequest(showtime.ID,
		request.SeatRequest{Row: "A", Number: 1},
		request.SeatRequest{Row: "C", Number: 5},
	))
	require.NoError(t, err)

	detail, err := svc.GetShowtimeDetail(ctx, showtime.ID.String())
	require.NoError(t, err)

	// 5 rows x 10 seats
	require.Len(t, detail.SeatMap, 50)
	assert.ElementsMatch(t, []string{"A1", "C5"}, detail.BookedSeats)

	byLabel := make(map[string]bool)
	for _, seat := range detail.SeatMap {
		byLabel[seat.Label] = seat.Available

		switch seat.Tier {
		case entity.SeatTierVIP:
			assert.Equal(t, 375.0, seat.Price)
		case entity.SeatTierRegular:
			assert.Equal(t, 250.0, seat.Price)
		}
	}
	assert.False(t, byLabel["A1"])
	assert.False(t, byLabel["C5"])
	assert.True(t, byLabel["A2"])

	t.Run("lapsed holds become available again", func(t *testing.T) {
		clock.Advance(11 * time.Minute)

		detail, err := svc.GetShowtimeDetail(ctx, showtime.ID.String())
		require.NoError(t, err)
		assert.Empty(t, detail.BookedSeats)
	})

	t.Run("unknown showtime", func(t *testing.T) {
		_, err := svc.GetShowtimeDetail(ctx, uuid.New().String())
		require.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestCreateShowtime(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()

	screen := &entity.Screen{
		Base:        entity.Base{ID: uuid.New()},
		TheaterID:   uuid.New(),
		Name:        "IMAX",
		Capacity:    100,
		Rows:        10,
		SeatsPerRow: 10,
	}
	require.NoError(t, repo.Screen.Create(ctx, screen))

	movie := &entity.Movie{
		Base:  entity.Base{ID: uuid.New()},
		Title: "Interstellar",
	}
	require.NoError(t, repo.Movie.Create(ctx, movie))

	svc := NewShowtimeService(repo, testConfig(), zap.NewNop(), clock.Now)

	created, err := svc.CreateShowtime(ctx, &request.CreateShowtimeRequest{
		MovieID:   movie.ID.String(),
		ScreenID:  screen.ID.String(),
		StartTime: clock.Now().Add(6 * time.Hour).Format(time.RFC3339),
		BasePrice: 300,
	})
	require.NoError(t, err)

	assert.Equal(t, 300.0, created.BasePrice)
	assert.Equal(t, 300.0, created.CurrentPrice)
	assert.Equal(t, entity.PricingSourceBase, created.PricingSource)
	assert.Zero(t, created.OccupiedSeats)

	t.Run("unknown screen", func(t *testing.T) {
		_, err := svc.CreateShowtime(ctx, &request.CreateShowtimeRequest{
			MovieID:   movie.ID.String(),
			ScreenID:  uuid.New().String(),
			StartTime: clock.Now().Add(6 * time.Hour).Format(time.RFC3339),
			BasePrice: 300,
		})
		require.ErrorIs(t, err, entity.ErrNotFound)
	})
}
