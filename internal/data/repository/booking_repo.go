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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	MarkCanceled(ctx context.Context, bookingID uuid.UUID, canceledAt time.Time) error
	CountActiveBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type bookingRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewBookingRepository(db database.Queryer, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, slot_id, resource_id, service_id, user_id, status, source, created_at, canceled_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.ResourceID,
		&booking.ServiceID,
		&booking.UserID,
		&booking.Status,
		&booking.Source,
		&booking.CreatedAt,
		&booking.CanceledAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, slot_id, resource_id, service_id, user_id, status, source, created_at, canceled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.SlotID,
		booking.ResourceID,
		booking.ServiceID,
		booking.UserID,
		booking.Status,
		booking.Source,
		booking.CreatedAt,
		booking.CanceledAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("slot_id", booking.SlotID.String()),
			zap.String("user_id", booking.UserID),
		)
		return fmt.Errorf("create booking for slot %s: %w", booking.SlotID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock booking %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID, err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) MarkCanceled(ctx context.Context, bookingID uuid.UUID, canceledAt time.Time) error {
	query := `UPDATE bookings SET status = $2, canceled_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, entity.BookingStatusCanceled, canceledAt)
	if err != nil {
		r.log.Error("Failed to mark booking canceled",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("mark booking %s canceled: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// CountActiveBySlotIDs returns the number of PENDING or CONFIRMED bookings
// per slot, for the utilization report.
func (r *bookingRepository) CountActiveBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT slot_id, COUNT(*)
		FROM bookings
		WHERE slot_id = ANY($1) AND status IN ($2, $3)
		GROUP BY slot_id
	`

	rows, err := r.db.Query(ctx, query, slotIDs, entity.BookingStatusPending, entity.BookingStatusConfirmed)
	if err != nil {
		r.log.Error("Failed to count active bookings", zap.Error(err))
		return nil, fmt.Errorf("count active bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slotID uuid.UUID
		var count int
		if err := rows.Scan(&slotID, &count); err != nil {
			r.log.Error("Failed to scan active booking count", zap.Error(err))
			return nil, fmt.Errorf("scan active booking count: %w", err)
		}
		counts[slotID] = count
	}

	return counts, nil
}
