package repository

import (
	"context"
	"fmt"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	FindUpcoming(ctx context.Context, from, to time.Time, limit int) ([]*entity.Slot, error)
	UpdateCapacityStatus(ctx context.Context, id uuid.UUID, capacity int, status entity.SlotStatus) error
}

type slotRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewSlotRepository(db database.Queryer, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

const slotColumns = `id, resource_id, service_id, start_at, end_at, capacity, status, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.Slot, error) {
	var slot entity.Slot
	err := row.Scan(
		&slot.ID,
		&slot.ResourceID,
		&slot.ServiceID,
		&slot.StartAt,
		&slot.EndAt,
		&slot.Capacity,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts the slot unless one already exists for the same resource and
// start time. Returns whether a row was inserted. The schedule generator
// relies on this to stay insert-only and re-runnable.
func (r *slotRepository) Create(ctx context.Context, slot *entity.Slot) (bool, error) {
	query := `
		INSERT INTO slots (id, resource_id, service_id, start_at, end_at, capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (resource_id, start_at) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.ResourceID,
		slot.ServiceID,
		slot.StartAt,
		slot.EndAt,
		slot.Capacity,
		slot.Status,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("resource_id", slot.ResourceID.String()),
			zap.Time("start_at", slot.StartAt),
		)
		return false, fmt.Errorf("create slot at %s: %w", slot.StartAt.Format(time.RFC3339), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

// FindByIDForUpdate row-locks the slot for the rest of the transaction. The
// slot row is the single point of contention per slot; every capacity or
// status mutation must read it through this method.
func (r *slotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("lock slot %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *slotRepository) FindUpcoming(ctx context.Context, from, to time.Time, limit int) ([]*entity.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE start_at >= $1 AND start_at <= $2
		ORDER BY start_at
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, from, to, limit)
	if err != nil {
		r.log.Error("Failed to find upcoming slots", zap.Error(err))
		return nil, fmt.Errorf("find upcoming slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *slotRepository) UpdateCapacityStatus(ctx context.Context, id uuid.UUID, capacity int, status entity.SlotStatus) error {
	query := `UPDATE slots SET capacity = $2, status = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, capacity, status)
	if err != nil {
		r.log.Error("Failed to update slot capacity/status",
			zap.Error(err),
			zap.String("slot_id", id.String()),
			zap.Int("capacity", capacity),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", id.String())
	}

	return nil
}
