package repository

import (
	"context"
	"fmt"

	"cinemax/internal/data/entity"
	"cinemax/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScreenRepository interface {
	Create(ctx context.Context, screen *entity.Screen) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error)
	FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Screen, error)
}

type screenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreenRepository(db database.PgxIface, log *zap.Logger) ScreenRepository {
	return &screenRepository{
		db:  db,
		log: log.With(zap.String("repository", "screen")),
	}
}

const screenColumns = `id, theater_id, name, capacity, rows, seats_per_row, created_at, updated_at`

func (r *screenRepository) Create(ctx context.Context, screen *entity.Screen) error {
	query := `
		INSERT INTO screens (` + screenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		screen.ID,
		screen.TheaterID,
		screen.Name,
		screen.Capacity,
		screen.Rows,
		screen.SeatsPerRow,
		screen.CreatedAt,
		screen.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screen",
			zap.Error(err),
			zap.String("theater_id", screen.TheaterID.String()),
			zap.String("name", screen.Name),
		)
		return fmt.Errorf("create screen %s: %w", screen.Name, err)
	}

	return nil
}

func (r *screenRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	query := `SELECT ` + screenColumns + ` FROM screens WHERE id = $1`

	screen, err := r.scanScreen(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screen by ID",
			zap.Error(err),
			zap.String("screen_id", id.String()),
		)
		return nil, fmt.Errorf("find screen by ID %s: %w", id.String(), err)
	}

	return screen, nil
}

func (r *screenRepository) FindByTheaterID(ctx context.Context, theaterID uuid.UUID) ([]*entity.Screen, error) {
	query := `SELECT ` + screenColumns + ` FROM screens WHERE theater_id = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, theaterID)
	if err != nil {
		r.log.Error("Failed to find screens by theater ID",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return nil, fmt.Errorf("find screens by theater ID %s: %w", theaterID.String(), err)
	}
	defer rows.Close()

	var screens []*entity.Screen
	for rows.Next() {
		screen, err := r.scanScreen(rows)
		if err != nil {
			r.log.Error("Failed to scan screen row", zap.Error(err))
			return nil, fmt.Errorf("scan screen row: %w", err)
		}
		screens = append(screens, screen)
	}

	return screens, nil
}

func (r *screenRepository) scanScreen(row pgx.Row) (*entity.Screen, error) {
	var screen entity.Screen
	err := row.Scan(
		&screen.ID,
		&screen.TheaterID,
		&screen.Name,
		&screen.Capacity,
		&screen.Rows,
		&screen.SeatsPerRow,
		&screen.CreatedAt,
		&screen.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &screen, nil
}
