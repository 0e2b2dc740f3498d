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

type ShowtimeService interface {
	GetUpcoming(ctx context.Context) ([]response.ShowtimeResponse, error)
	GetByMovie(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error)

	// GetShowtimeDetail returns the showtime plus its generated seat map,
	// with every live-claimed seat marked unavailable.
	GetShowtimeDetail(ctx context.Context, showtimeID string) (*response.ShowtimeDetailResponse, error)

	// Admin
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
}

type showtimeService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    Clock
}

func NewShowtimeService(repo *repository.Repository, config *utils.Config, log *zap.Logger, now Clock) ShowtimeService {
	return &showtimeService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "showtime")),
		now:    now,
	}
}

func (s *showtimeService) GetUpcoming(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindUpcoming(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) GetByMovie(ctx context.Context, movieID string) ([]response.ShowtimeResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, id)
	if err != nil {
		return nil, err
	}
	return response.ShowtimesToResponse(showtimes), nil
}

func (s *showtimeService) GetShowtimeDetail(ctx context.Context, showtimeID string) (*response.ShowtimeDetailResponse, error) {
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

	screen, err := s.repo.Screen.FindByID(ctx, showtime.ScreenID)
	if err != nil {
		return nil, err
	}
	if screen == nil {
		return nil, fmt.Errorf("screen %s: %w", showtime.ScreenID.String(), entity.ErrNotFound)
	}

	claimed, err := s.repo.Hold.FindLiveSeats(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	claimedLabels := make(map[string]bool, len(claimed))
	for _, seat := range claimed {
		claimedLabels[seat.Label()] = true
	}

	seatMap := entity.GenerateSeatMap(screen.Rows, screen.SeatsPerRow, entity.DefaultTierRule)

	detail := &response.ShowtimeDetailResponse{
		ShowtimeResponse: response.ShowtimeToResponse(showtime),
		SeatMap:          make([]response.SeatStatus, 0, len(seatMap)),
		BookedSeats:      make([]string, 0, len(claimed)),
	}

	for _, seat := range seatMap {
		label := seat.Label()
		detail.SeatMap = append(detail.SeatMap, response.SeatStatus{
			Row:       seat.Row,
			Number:    seat.Number,
			Label:     label,
			Tier:      seat.Tier,
			Price:     entity.TierPrice(seat.Tier, showtime.CurrentPrice, s.config.Pricing.VIPPriceFactor),
			Available: !claimedLabels[label],
		})
	}
	for _, seat := range claimed {
		detail.BookedSeats = append(detail.BookedSeats, seat.Label())
	}

	if movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID); err == nil && movie != nil {
		m := response.MovieToResponse(movie)
		detail.Movie = &m
	}
	sc := response.ScreenToResponse(screen)
	detail.Screen = &sc

	return detail, nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}
	screenID, err := uuid.Parse(req.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("invalid screen ID format %s: %w", req.ScreenID, err)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %s: %w", req.StartTime, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, entity.ErrNotFound)
	}

	screen, err := s.repo.Screen.FindByID(ctx, screenID)
	if err != nil {
		return nil, err
	}
	if screen == nil {
		return nil, fmt.Errorf("screen %s: %w", req.ScreenID, entity.ErrNotFound)
	}

	now := s.now().UTC()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:       movieID,
		ScreenID:      screenID,
		StartTime:     startTime,
		BasePrice:     req.BasePrice,
		CurrentPrice:  req.BasePrice,
		PricingSource: entity.PricingSourceBase,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Time("start_time", startTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}
