package usecase

import (
	"context"
	"fmt"
	"time"

	"cinemax/internal/data/entity"
	"cinemax/internal/data/repository"
	"cinemax/internal/dto/request"
	"cinemax/internal/dto/response"
	"cinemax/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HoldService interface {
	// RequestHold places a time-boxed exclusive claim on a batch of seats.
	// All-or-nothing: one unavailable seat fails the whole request.
	RequestHold(ctx context.Context, holderID string, req *request.CreateHoldRequest) (*response.HoldGroupResponse, error)

	// ReleaseHold frees a hold group early. Only the holder may release,
	// and only active holds are touched: once a group is consumed by a
	// booking, release is a no-op and the seats stay claimed.
	ReleaseHold(ctx context.Context, holderID, groupID string) error

	// SweepExpired flips lapsed active holds to expired. Called by the
	// background sweeper; expiry is already lazy everywhere else, so this
	// only keeps the ledger tidy.
	SweepExpired(ctx context.Context) (int64, error)
}

type holdService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    Clock
}

func NewHoldService(repo *repository.Repository, config *utils.Config, log *zap.Logger, now Clock) HoldService {
	return &holdService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "hold")),
		now:    now,
	}
}

func (s *holdService) RequestHold(ctx context.Context, holderID string, req *request.CreateHoldRequest) (*response.HoldGroupResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Request hold validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", req.ShowtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", req.ShowtimeID, entity.ErrNotFound)
	}

	screen, err := s.repo.Screen.FindByID(ctx, showtime.ScreenID)
	if err != nil {
		return nil, err
	}
	if screen == nil {
		return nil, fmt.Errorf("screen %s: %w", showtime.ScreenID.String(), entity.ErrNotFound)
	}

	// Resolve requested seats against the generated map. Tier and price are
	// never client-supplied.
	seatMap := entity.GenerateSeatMap(screen.Rows, screen.SeatsPerRow, entity.DefaultTierRule)
	byLabel := make(map[string]entity.Seat, len(seatMap))
	for _, seat := range seatMap {
		byLabel[seat.Label()] = seat
	}

	now := s.now().UTC()
	groupID := uuid.New()
	expiresAt := now.Add(time.Duration(s.config.Booking.HoldTTLMinutes) * time.Minute)

	holds := make([]*entity.Hold, 0, len(req.Seats))
	seen := make(map[string]bool, len(req.Seats))
	for _, sr := range req.Seats {
		label := fmt.Sprintf("%s%d", sr.Row, sr.Number)
		if seen[label] {
			return nil, fmt.Errorf("duplicate seat %s in request", label)
		}
		seen[label] = true

		seat, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("seat %s does not exist in this screen layout: %w", label, entity.ErrNotFound)
		}

		holds = append(holds, &entity.Hold{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			GroupID:    groupID,
			ShowtimeID: showtimeID,
			HolderID:   holderID,
			SeatRow:    seat.Row,
			SeatNumber: seat.Number,
			SeatTier:   seat.Tier,
			UnitPrice:  entity.TierPrice(seat.Tier, showtime.CurrentPrice, s.config.Pricing.VIPPriceFactor),
			State:      entity.HoldStateActive,
			ExpiresAt:  expiresAt,
		})
	}

	if err := s.repo.Hold.CreateGroup(ctx, holds, now); err != nil {
		return nil, err
	}

	s.log.Info("Hold group created",
		zap.String("group_id", groupID.String()),
		zap.String("showtime_id", showtimeID.String()),
		zap.Int("seat_count", len(holds)),
		zap.Time("expires_at", expiresAt),
	)

	return response.HoldGroupToResponse(holds), nil
}

func (s *holdService) ReleaseHold(ctx context.Context, holderID, groupID string) error {
	id, err := uuid.Parse(groupID)
	if err != nil {
		return fmt.Errorf("invalid group ID format %s: %w", groupID, err)
	}

	holds, err := s.repo.Hold.FindByGroupID(ctx, id)
	if err != nil {
		return err
	}
	// Treat a foreign group the same as a missing one.
	if len(holds) == 0 || holds[0].HolderID != holderID {
		return fmt.Errorf("hold group %s: %w", groupID, entity.ErrNotFound)
	}

	released, err := s.repo.Hold.ReleaseActive(ctx, id)
	if err != nil {
		return err
	}

	s.log.Info("Hold group released",
		zap.String("group_id", groupID),
		zap.Int64("released", released),
	)
	return nil
}

func (s *holdService) SweepExpired(ctx context.Context) (int64, error) {
	swept, err := s.repo.Hold.SweepExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		s.log.Info("Expired holds swept", zap.Int64("count", swept))
	}
	return swept, nil
}
