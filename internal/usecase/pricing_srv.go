package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"cinemax/internal/data/entity"
	"cinemax/internal/data/repository"
	"cinemax/internal/dto/request"
	"cinemax/internal/dto/response"
	"cinemax/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PricingOracle produces a price recommendation for one showtime. The
// production implementation would call out to a model service; the bundled
// one is a mock with plausible output ranges.
type PricingOracle interface {
	Quote(ctx context.Context, showtimeID uuid.UUID, occupied, capacity int, timeToShow time.Duration) (*entity.PriceQuote, error)
}

type mlOracle struct {
	rng *rand.Rand
}

func NewMLOracle() PricingOracle {
	return &mlOracle{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (o *mlOracle) Quote(_ context.Context, showtimeID uuid.UUID, occupied, capacity int, _ time.Duration) (*entity.PriceQuote, error) {
	return &entity.PriceQuote{
		ShowtimeID:       showtimeID,
		Price:            200 + o.rng.Float64()*100,
		Source:           entity.PricingSourceML,
		PredictedTickets: 50 + o.rng.Intn(201),
		Confidence:       70 + o.rng.Float64()*30,
		ModelVersion:     "v2.1",
	}, nil
}

type PricingService interface {
	// Predict returns the oracle's recommendation for one showtime without
	// persisting anything.
	Predict(ctx context.Context, showtimeID string) (*response.PredictionResponse, error)

	// GetPredictions quotes every upcoming showtime.
	GetPredictions(ctx context.Context) ([]response.PredictionResponse, error)

	// OverridePricing sets a manual price on a showtime and records the
	// change in the pricing history.
	OverridePricing(ctx context.Context, adminID, showtimeID string, req *request.UpdatePricingRequest) (*response.ShowtimeResponse, error)

	GetHistory(ctx context.Context, showtimeID string) ([]response.PricingHistoryResponse, error)
}

type pricingService struct {
	repo   *repository.Repository
	oracle PricingOracle
	log    *zap.Logger
	now    Clock
}

func NewPricingService(repo *repository.Repository, oracle PricingOracle, log *zap.Logger, now Clock) PricingService {
	return &pricingService{
		repo:   repo,
		oracle: oracle,
		log:    log.With(zap.String("service", "pricing")),
		now:    now,
	}
}

func (s *pricingService) Predict(ctx context.Context, showtimeID string) (*response.PredictionResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, entity.ErrNotFound)
	}

	quote, err := s.quote(ctx, showtime)
	if err != nil {
		return nil, err
	}

	resp := response.PredictionToResponse(quote)
	return &resp, nil
}

func (s *pricingService) GetPredictions(ctx context.Context) ([]response.PredictionResponse, error) {
	showtimes, err := s.repo.Showtime.FindUpcoming(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]response.PredictionResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		quote, err := s.quote(ctx, showtime)
		if err != nil {
			s.log.Error("Failed to quote showtime",
				zap.Error(err),
				zap.String("showtime_id", showtime.ID.String()),
			)
			continue
		}
		out = append(out, response.PredictionToResponse(quote))
	}

	return out, nil
}

func (s *pricingService) OverridePricing(ctx context.Context, adminID, showtimeID string, req *request.UpdatePricingRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Override pricing validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, fmt.Errorf("invalid admin ID format %s: %w", adminID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, entity.ErrNotFound)
	}

	updated, err := s.repo.Showtime.UpdatePricing(ctx, id, req.Price, entity.PricingSourceOverride)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, entity.ErrNotFound)
	}

	record := &entity.PricingHistory{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now().UTC(),
		},
		ShowtimeID:    id,
		BasePrice:     showtime.BasePrice,
		FinalPrice:    req.Price,
		Source:        entity.PricingSourceOverride,
		AdminOverride: true,
		AdminUserID:   &adminUUID,
	}
	if rate := s.occupancyRate(ctx, showtime); rate != nil {
		record.OccupancyRate = rate
	}

	if err := s.repo.PricingHistory.Create(ctx, record); err != nil {
		// Price is already applied; history is best effort.
		s.log.Error("Failed to record pricing history",
			zap.Error(err),
			zap.String("showtime_id", showtimeID),
		)
	}

	showtime.CurrentPrice = req.Price
	showtime.PricingSource = entity.PricingSourceOverride

	s.log.Info("Showtime price overridden",
		zap.String("showtime_id", showtimeID),
		zap.String("admin_id", adminID),
		zap.Float64("price", req.Price),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *pricingService) GetHistory(ctx context.Context, showtimeID string) ([]response.PricingHistoryResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	records, err := s.repo.PricingHistory.FindByShowtimeID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]response.PricingHistoryResponse, 0, len(records))
	for _, record := range records {
		out = append(out, response.PricingHistoryToResponse(record))
	}
	return out, nil
}

func (s *pricingService) quote(ctx context.Context, showtime *entity.Showtime) (*entity.PriceQuote, error) {
	capacity := 0
	if screen, err := s.repo.Screen.FindByID(ctx, showtime.ScreenID); err == nil && screen != nil {
		capacity = screen.Capacity
	}

	timeToShow := showtime.StartTime.Sub(s.now().UTC())
	return s.oracle.Quote(ctx, showtime.ID, showtime.OccupiedSeats, capacity, timeToShow)
}

func (s *pricingService) occupancyRate(ctx context.Context, showtime *entity.Showtime) *float64 {
	screen, err := s.repo.Screen.FindByID(ctx, showtime.ScreenID)
	if err != nil || screen == nil || screen.Capacity == 0 {
		return nil
	}
	rate := float64(showtime.OccupiedSeats) / float64(screen.Capacity)
	return &rate
}
