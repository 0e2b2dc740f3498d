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

type TheaterRepository interface {
	Create(ctx context.Context, theater *entity.Theater) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error)
	FindAll(ctx context.Context) ([]*entity.Theater, error)
}

type theaterRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTheaterRepository(db database.PgxIface, log *zap.Logger) TheaterRepository {
	return &theaterRepository{
		db:  db,
		log: log.With(zap.String("repository", "theater")),
	}
}

const theaterColumns = `id, name, location, city, created_at, updated_at`

func (r *theaterRepository) Create(ctx context.Context, theater *entity.Theater) error {
	query := `
		INSERT INTO theaters (` + theaterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		theater.ID,
		theater.Name,
		theater.Location,
		theater.City,
		theater.CreatedAt,
		theater.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create theater",
			zap.Error(err),
			zap.String("name", theater.Name),
		)
		return fmt.Errorf("create theater %s: %w", theater.Name, err)
	}

	return nil
}

func (r *theaterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE id = $1`

	var theater entity.Theater
	err := r.db.QueryRow(ctx, query, id).Scan(
		&theater.ID,
		&theater.Name,
		&theater.Location,
		&theater.City,
		&theater.CreatedAt,
		&theater.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theater by ID",
			zap.Error(err),
			zap.String("theater_id", id.String()),
		)
		return nil, fmt.Errorf("find theater by ID %s: %w", id.String(), err)
	}

	return &theater, nil
}

func (r *theaterRepository) FindAll(ctx context.Context) ([]*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters ORDER BY city, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find theaters", zap.Error(err))
		return nil, fmt.Errorf("find theaters: %w", err)
	}
	defer rows.Close()

	var theaters []*entity.Theater
	for rows.Next() {
		var theater entity.Theater
		err := rows.Scan(
			&theater.ID,
			&theater.Name,
			&theater.Location,
			&theater.City,
			&theater.CreatedAt,
			&theater.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan theater row", zap.Error(err))
			return nil, fmt.Errorf("scan theater row: %w", err)
		}
		theaters = append(theaters, &theater)
	}

	return theaters, nil
}
