package repository

import (
	"context"
	"errors"
	"fmt"

	"slot-booking/internal/data/entity"
	"slot-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrKeyExists is returned when the uniqueness key insert hits the primary
// key. The coordinator checks existence first; this is the store-level
// backstop for the same invariant.
var ErrKeyExists = errors.New("booking key already exists")

type BookingKeyRepository interface {
	Create(ctx context.Context, key *entity.BookingKey) error
	Exists(ctx context.Context, slotID uuid.UUID, userID string) (bool, error)
	Delete(ctx context.Context, slotID uuid.UUID, userID string) error
}

type bookingKeyRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewBookingKeyRepository(db database.Queryer, log *zap.Logger) BookingKeyRepository {
	return &bookingKeyRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_key")),
	}
}

func (r *bookingKeyRepository) Create(ctx context.Context, key *entity.BookingKey) error {
	query := `
		INSERT INTO booking_keys (key, slot_id, user_id, booking_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		key.Key,
		key.SlotID,
		key.UserID,
		key.BookingID,
		key.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrKeyExists
		}
		r.log.Error("Failed to create booking key",
			zap.Error(err),
			zap.String("key", key.Key),
		)
		return fmt.Errorf("create booking key %s: %w", key.Key, err)
	}

	return nil
}

func (r *bookingKeyRepository) Exists(ctx context.Context, slotID uuid.UUID, userID string) (bool, error) {
	query := `SELECT 1 FROM booking_keys WHERE key = $1`

	var one int
	err := r.db.QueryRow(ctx, query, entity.BookingKeyFor(slotID, userID)).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to check booking key",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("user_id", userID),
		)
		return false, fmt.Errorf("check booking key for slot %s: %w", slotID.String(), err)
	}

	return true, nil
}

func (r *bookingKeyRepository) Delete(ctx context.Context, slotID uuid.UUID, userID string) error {
	query := `DELETE FROM booking_keys WHERE key = $1`

	_, err := r.db.Exec(ctx, query, entity.BookingKeyFor(slotID, userID))
	if err != nil {
		r.log.Error("Failed to delete booking key",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("delete booking key for slot %s: %w", slotID.String(), err)
	}

	return nil
}
