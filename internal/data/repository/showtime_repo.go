package repository

import (
	"context"
	"fmt"
	"time"

	"cinemax/internal/data/entity"
	"cinemax/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]*entity.Showtime, error)
	UpdatePricing(ctx context.Context, id uuid.UUID, price float64, source entity.PricingSource) (bool, error)

	// RecomputeOccupancy derives occupied_seats from paid bookings in a
	// single statement; idempotent and safe under concurrent callers.
	RecomputeOccupancy(ctx context.Context, id uuid.UUID) (int, error)

	// AverageOccupancy returns the mean occupancy fraction across all
	// showtimes (0..1).
	AverageOccupancy(ctx context.Context) (float64, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, screen_id, start_time, base_price, current_price, pricing_source, occupied_seats, created_at, updated_at`

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (` + showtimeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.ScreenID,
		showtime.StartTime,
		showtime.BasePrice,
		showtime.CurrentPrice,
		showtime.PricingSource,
		showtime.OccupiedSeats,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("screen_id", showtime.ScreenID.String()),
		)
		return fmt.Errorf("create showtime for movie %s: %w", showtime.MovieID.String(), err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := r.scanShowtime(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE movie_id = $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find showtimes by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find showtimes by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	return r.scanShowtimes(rows)
}

func (r *showtimeRepository) FindUpcoming(ctx context.Context, now time.Time) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE start_time > $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find upcoming showtimes", zap.Error(err))
		return nil, fmt.Errorf("find upcoming showtimes: %w", err)
	}
	defer rows.Close()

	return r.scanShowtimes(rows)
}

func (r *showtimeRepository) UpdatePricing(ctx context.Context, id uuid.UUID, price float64, source entity.PricingSource) (bool, error) {
	query := `
		UPDATE showtimes
		SET current_price = $2, pricing_source = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, price, source)
	if err != nil {
		r.log.Error("Failed to update showtime pricing",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
			zap.Float64("price", price),
		)
		return false, fmt.Errorf("update showtime %s pricing: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *showtimeRepository) RecomputeOccupancy(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE showtimes
		SET occupied_seats = (
			SELECT COALESCE(SUM(total_seats), 0)
			FROM bookings
			WHERE showtime_id = $1 AND payment_status = 'paid'
		), updated_at = NOW()
		WHERE id = $1
		RETURNING occupied_seats
	`

	var occupied int
	err := r.db.QueryRow(ctx, query, id).Scan(&occupied)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("showtime %s: %w", id.String(), entity.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to recompute occupancy",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return 0, fmt.Errorf("recompute occupancy for showtime %s: %w", id.String(), err)
	}

	return occupied, nil
}

func (r *showtimeRepository) AverageOccupancy(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(AVG(st.occupied_seats::float8 / NULLIF(sc.capacity, 0)), 0)
		FROM showtimes st
		JOIN screens sc ON sc.id = st.screen_id
	`

	var avg float64
	if err := r.db.QueryRow(ctx, query).Scan(&avg); err != nil {
		r.log.Error("Failed to compute average occupancy", zap.Error(err))
		return 0, fmt.Errorf("compute average occupancy: %w", err)
	}

	return avg, nil
}

func (r *showtimeRepository) scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var showtime entity.Showtime
	err := row.Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.ScreenID,
		&showtime.StartTime,
		&showtime.BasePrice,
		&showtime.CurrentPrice,
		&showtime.PricingSource,
		&showtime.OccupiedSeats,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (r *showtimeRepository) scanShowtimes(rows pgx.Rows) ([]*entity.Showtime, error) {
	var showtimes []*entity.Showtime
	for rows.Next() {
		showtime, err := r.scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, showtime)
	}
	return showtimes, nil
}
