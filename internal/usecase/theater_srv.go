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

type TheaterService interface {
	GetTheaters(ctx context.Context) ([]response.TheaterResponse, error)
	GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error)
	GetScreens(ctx context.Context, theaterID string) ([]response.ScreenResponse, error)

	// Admin
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error)
	CreateScreen(ctx context.Context, req *request.CreateScreenRequest) (*response.ScreenResponse, error)
}

type theaterService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTheaterService(repo *repository.Repository, log *zap.Logger) TheaterService {
	return &theaterService{
		repo: repo,
		log:  log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) GetTheaters(ctx context.Context) ([]response.TheaterResponse, error) {
	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]response.TheaterResponse, 0, len(theaters))
	for _, t := range theaters {
		out = append(out, response.TheaterToResponse(t))
	}
	return out, nil
}

func (s *theaterService) GetTheaterByID(ctx context.Context, theaterID string) (*response.TheaterResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", theaterID, entity.ErrNotFound)
	}

	screens, err := s.repo.Screen.FindByTheaterID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.TheaterToResponse(theater)
	for _, sc := range screens {
		resp.Screens = append(resp.Screens, response.ScreenToResponse(sc))
	}

	return &resp, nil
}

func (s *theaterService) GetScreens(ctx context.Context, theaterID string) ([]response.ScreenResponse, error) {
	id, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	screens, err := s.repo.Screen.FindByTheaterID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]response.ScreenResponse, 0, len(screens))
	for _, sc := range screens {
		out = append(out, response.ScreenToResponse(sc))
	}
	return out, nil
}

func (s *theaterService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now().UTC()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Location: req.Location,
		City:     req.City,
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		return nil, err
	}

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.String("name", theater.Name),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) CreateScreen(ctx context.Context, req *request.CreateScreenRequest) (*response.ScreenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screen validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	theaterID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", req.TheaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", req.TheaterID, entity.ErrNotFound)
	}

	now := time.Now().UTC()
	screen := &entity.Screen{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TheaterID:   theaterID,
		Name:        req.Name,
		Capacity:    req.Rows * req.SeatsPerRow,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	}

	if err := s.repo.Screen.Create(ctx, screen); err != nil {
		return nil, err
	}

	s.log.Info("Screen created",
		zap.String("screen_id", screen.ID.String()),
		zap.String("theater_id", theaterID.String()),
		zap.Int("capacity", screen.Capacity),
	)

	resp := response.ScreenToResponse(screen)
	return &resp, nil
}
