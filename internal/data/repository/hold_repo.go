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

type HoldRepository interface {
	// CreateGroup inserts all holds of one request atomically. Either every
	// seat is held or none is; a live claim on any seat fails the whole
	// batch with entity.ErrSeatUnavailable.
	CreateGroup(ctx context.Context, holds []*entity.Hold, now time.Time) error
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*entity.Hold, error)

	// FindLiveSeats returns the seats of a showtime that are currently
	// claimed: active unexpired holds plus consumed holds not resolved by
	// a failed, refunded or expired booking.
	FindLiveSeats(ctx context.Context, showtimeID uuid.UUID, now time.Time) ([]entity.Seat, error)

	// ConsumeGroup transitions every hold of the group from active to
	// consumed, failing with entity.ErrHoldExpired if any hold already
	// lapsed. Returns the consumed holds.
	ConsumeGroup(ctx context.Context, groupID uuid.UUID, now time.Time) ([]*entity.Hold, error)

	// ReleaseGroup frees the group's seats, consumed ones included. Only
	// the booking failure, expiry and refund paths may call it. Idempotent:
	// holds already expired or released are left alone, zero affected rows
	// is not an error.
	ReleaseGroup(ctx context.Context, groupID uuid.UUID) (int64, error)

	// ReleaseActive frees only the group's still-active holds. Consumed
	// holds are untouched, so a release can never unseat a booking.
	ReleaseActive(ctx context.Context, groupID uuid.UUID) (int64, error)

	// SweepExpired marks every active hold past its expiry as expired.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type holdRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHoldRepository(db database.PgxIface, log *zap.Logger) HoldRepository {
	return &holdRepository{
		db:  db,
		log: log.With(zap.String("repository", "hold")),
	}
}

const holdColumns = `id, group_id, showtime_id, holder_id, seat_row, seat_number, seat_tier, unit_price, state, expires_at, created_at`

// liveClaimCondition matches holds that still block their seat: active and
// unexpired, or consumed and not yet resolved by a terminal booking. A
// consumed hold with no booking row still blocks, because the booking insert
// commits after the consume does.
const liveClaimCondition = `(
	(h.state = 'active' AND h.expires_at > $2)
	OR (h.state = 'consumed' AND NOT EXISTS (
		SELECT 1 FROM bookings b
		WHERE b.hold_group_id = h.group_id
		  AND b.payment_status IN ('failed', 'refunded', 'expired')
	))
)`

func (r *holdRepository) CreateGroup(ctx context.Context, holds []*entity.Hold, now time.Time) error {
	if len(holds) == 0 {
		return nil
	}
	showtimeID := holds[0].ShowtimeID

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin hold transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the showtime row so concurrent hold batches for the same
	// showtime serialize; without this two overlapping requests could both
	// pass the conflict check before either inserts.
	var locked uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM showtimes WHERE id = $1 FOR UPDATE`, showtimeID).Scan(&locked)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("showtime %s: %w", showtimeID.String(), entity.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock showtime %s: %w", showtimeID.String(), err)
	}

	labels := make([]string, len(holds))
	for i, h := range holds {
		labels[i] = h.Seat().Label()
	}

	conflictQuery := `
		SELECT COUNT(*)
		FROM seat_holds h
		WHERE h.showtime_id = $1
		  AND h.seat_row || h.seat_number::text = ANY($3)
		  AND ` + liveClaimCondition

	var conflicts int
	if err := tx.QueryRow(ctx, conflictQuery, showtimeID, now, labels).Scan(&conflicts); err != nil {
		r.log.Error("Failed to check seat conflicts",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
			zap.Int("seat_count", len(holds)),
		)
		return fmt.Errorf("check seat conflicts: %w", err)
	}
	if conflicts > 0 {
		return fmt.Errorf("%d of %d requested seats already claimed: %w",
			conflicts, len(holds), entity.ErrSeatUnavailable)
	}

	// Batch insert
	query := `INSERT INTO seat_holds (` + holdColumns + `) VALUES `
	args := []interface{}{}

	for i, h := range holds {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*11+1, i*11+2, i*11+3, i*11+4, i*11+5, i*11+6, i*11+7, i*11+8, i*11+9, i*11+10, i*11+11)

		args = append(args,
			h.ID,
			h.GroupID,
			h.ShowtimeID,
			h.HolderID,
			h.SeatRow,
			h.SeatNumber,
			h.SeatTier,
			h.UnitPrice,
			h.State,
			h.ExpiresAt,
			h.CreatedAt,
		)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to insert hold group",
			zap.Error(err),
			zap.String("group_id", holds[0].GroupID.String()),
			zap.Int("seat_count", len(holds)),
		)
		return fmt.Errorf("insert hold group: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit hold group: %w", err)
	}

	return nil
}

func (r *holdRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*entity.Hold, error) {
	query := `
		SELECT ` + holdColumns + `
		FROM seat_holds
		WHERE group_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		r.log.Error("Failed to find holds by group ID",
			zap.Error(err),
			zap.String("group_id", groupID.String()),
		)
		return nil, fmt.Errorf("find holds by group ID %s: %w", groupID.String(), err)
	}
	defer rows.Close()

	return scanHolds(rows)
}

func (r *holdRepository) FindLiveSeats(ctx context.Context, showtimeID uuid.UUID, now time.Time) ([]entity.Seat, error) {
	query := `
		SELECT h.seat_row, h.seat_number, h.seat_tier
		FROM seat_holds h
		WHERE h.showtime_id = $1 AND ` + liveClaimCondition + `
		ORDER BY h.seat_row, h.seat_number
	`

	rows, err := r.db.Query(ctx, query, showtimeID, now)
	if err != nil {
		r.log.Error("Failed to find live seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find live seats for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var seats []entity.Seat
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(&seat.Row, &seat.Number, &seat.Tier); err != nil {
			r.log.Error("Failed to scan live seat row", zap.Error(err))
			return nil, fmt.Errorf("scan live seat row: %w", err)
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

func (r *holdRepository) ConsumeGroup(ctx context.Context, groupID uuid.UUID, now time.Time) ([]*entity.Hold, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin consume transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE seat_holds
		SET state = 'consumed'
		WHERE group_id = $1 AND state = 'active' AND expires_at > $2
		RETURNING ` + holdColumns

	rows, err := tx.Query(ctx, query, groupID, now)
	if err != nil {
		r.log.Error("Failed to consume hold group",
			zap.Error(err),
			zap.String("group_id", groupID.String()),
		)
		return nil, fmt.Errorf("consume hold group %s: %w", groupID.String(), err)
	}

	consumed, err := scanHolds(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	var total int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM seat_holds WHERE group_id = $1`, groupID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count hold group %s: %w", groupID.String(), err)
	}

	if total == 0 {
		return nil, fmt.Errorf("hold group %s: %w", groupID.String(), entity.ErrNotFound)
	}
	if len(consumed) != total {
		// At least one hold already lapsed; the deferred rollback undoes
		// the partial consume.
		return nil, fmt.Errorf("hold group %s has lapsed holds: %w", groupID.String(), entity.ErrHoldExpired)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit consume group: %w", err)
	}

	return consumed, nil
}

func (r *holdRepository) ReleaseGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	query := `UPDATE seat_holds SET state = 'released' WHERE group_id = $1 AND state IN ('active', 'consumed')`

	result, err := r.db.Exec(ctx, query, groupID)
	if err != nil {
		r.log.Error("Failed to release hold group",
			zap.Error(err),
			zap.String("group_id", groupID.String()),
		)
		return 0, fmt.Errorf("release hold group %s: %w", groupID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *holdRepository) ReleaseActive(ctx context.Context, groupID uuid.UUID) (int64, error) {
	query := `UPDATE seat_holds SET state = 'released' WHERE group_id = $1 AND state = 'active'`

	result, err := r.db.Exec(ctx, query, groupID)
	if err != nil {
		r.log.Error("Failed to release active holds",
			zap.Error(err),
			zap.String("group_id", groupID.String()),
		)
		return 0, fmt.Errorf("release active holds of group %s: %w", groupID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *holdRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE seat_holds SET state = 'expired' WHERE state = 'active' AND expires_at <= $1`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to sweep expired holds", zap.Error(err))
		return 0, fmt.Errorf("sweep expired holds: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanHolds(rows pgx.Rows) ([]*entity.Hold, error) {
	var holds []*entity.Hold
	for rows.Next() {
		var hold entity.Hold
		err := rows.Scan(
			&hold.ID,
			&hold.GroupID,
			&hold.ShowtimeID,
			&hold.HolderID,
			&hold.SeatRow,
			&hold.SeatNumber,
			&hold.SeatTier,
			&hold.UnitPrice,
			&hold.State,
			&hold.ExpiresAt,
			&hold.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan hold row: %w", err)
		}
		holds = append(holds, &hold)
	}
	return holds, nil
}
