package repository

import (
	"context"
	"fmt"

	"cinemax/internal/data/entity"
	"cinemax/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingHistoryRepository interface {
	Create(ctx context.Context, record *entity.PricingHistory) error
	FindByShowtimeID(ctx context.Context, showtimeID uuid.UUID) ([]*entity.PricingHistory, error)
}

type pricingHistoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingHistoryRepository(db database.PgxIface, log *zap.Logger) PricingHistoryRepository {
	return &pricingHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing_history")),
	}
}

const pricingHistoryColumns = `id, showtime_id, base_price, ml_recommended_price, final_price, source, admin_override, admin_user_id, ml_model_version, occupancy_rate, created_at`

func (r *pricingHistoryRepository) Create(ctx context.Context, record *entity.PricingHistory) error {
	query := `
		INSERT INTO pricing_history (` + pricingHistoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.ShowtimeID,
		record.BasePrice,
		record.MLRecommendedPrice,
		record.FinalPrice,
		record.Source,
		record.AdminOverride,
		record.AdminUserID,
		record.MLModelVersion,
		record.OccupancyRate,
		record.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create pricing history record",
			zap.Error(err),
			zap.String("showtime_id", record.ShowtimeID.String()),
		)
		return fmt.Errorf("create pricing history for showtime %s: %w", record.ShowtimeID.String(), err)
	}

	return nil
}

func (r *pricingHistoryRepository) FindByShowtimeID(ctx context.Context, showtimeID uuid.UUID) ([]*entity.PricingHistory, error) {
	query := `
		SELECT ` + pricingHistoryColumns + `
		FROM pricing_history
		WHERE showtime_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, showtimeID)
	if err != nil {
		r.log.Error("Failed to find pricing history",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find pricing history for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var records []*entity.PricingHistory
	for rows.Next() {
		var record entity.PricingHistory
		err := rows.Scan(
			&record.ID,
			&record.ShowtimeID,
			&record.BasePrice,
			&record.MLRecommendedPrice,
			&record.FinalPrice,
			&record.Source,
			&record.AdminOverride,
			&record.AdminUserID,
			&record.MLModelVersion,
			&record.OccupancyRate,
			&record.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pricing history row", zap.Error(err))
			return nil, fmt.Errorf("scan pricing history row: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}
