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

func TestMLOracleQuoteRanges(t *testing.T) {
	oracle := NewMLOracle()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		quote, err := oracle.Quote(ctx, uuid.New(), 10, 50, time.Hour)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, quote.Price, 200.0)
		assert.LessOrEqual(t, quote.Price, 300.0)
		assert.GreaterOrEqual(t, quote.PredictedTickets, 50)
		assert.LessOrEqual(t, quote.PredictedTickets, 250)
		assert.GreaterOrEqual(t, quote.Confidence, 70.0)
		assert.LessOrEqual(t, quote.Confidence, 100.0)
		assert.Equal(t, "v2.1", quote.ModelVersion)
		assert.Equal(t, entity.PricingSourceML, quote.Source)
	}
}

func TestPredict(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewPricingService(repo, NewMLOracle(), zap.NewNop(), clock.Now)

	prediction, err := svc.Predict(ctx, showtime.ID.String())
	require.NoError(t, err)
	assert.Equal(t, showtime.ID.String(), prediction.ShowtimeID)
	assert.Equal(t, "v2.1", prediction.ModelVersion)

	_, err = svc.Predict(ctx, uuid.New().String())
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestOverridePricing(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	showtime := seedShowtime(t, store, clock)

	svc := NewPricingService(repo, NewMLOracle(), zap.NewNop(), clock.Now)
	adminID := uuid.New().String()

	updated, err := svc.OverridePricing(ctx, adminID, showtime.ID.String(), &request.UpdatePricingRequest{Price: 320})
	require.NoError(t, err)
	assert.Equal(t, 320.0, updated.CurrentPrice)
	assert.Equal(t, entity.PricingSourceOverride, updated.PricingSource)

	// The override is visible to subsequent reads and recorded in history.
	stored, err := repo.Showtime.FindByID(ctx, showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, 320.0, stored.CurrentPrice)

	history, err := svc.GetHistory(ctx, showtime.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 320.0, history[0].FinalPrice)
	assert.True(t, history[0].AdminOverride)
	assert.Equal(t, entity.PricingSourceOverride, history[0].Source)

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := svc.OverridePricing(ctx, adminID, showtime.ID.String(), &request.UpdatePricingRequest{Price: 0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("unknown showtime", func(t *testing.T) {
		_, err := svc.OverridePricing(ctx, adminID, uuid.New().String(), &request.UpdatePricingRequest{Price: 100})
		require.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestGetPredictionsQuotesUpcomingShowtimes(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	seedShowtime(t, store, clock)
	seedShowtime(t, store, clock)

	svc := NewPricingService(repo, NewMLOracle(), zap.NewNop(), clock.Now)

	predictions, err := svc.GetPredictions(ctx)
	require.NoError(t, err)
	assert.Len(t, predictions, 2)
}
