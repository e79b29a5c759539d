package repository

import (
	"context"
	"fmt"

	"slot-booking/internal/data/entity"
	"slot-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WaitlistRepository interface {
	// CreateIfAbsent inserts an entry unless one already exists for the
	// (slot, user) pair. Returns whether a new entry was created.
	CreateIfAbsent(ctx context.Context, entry *entity.WaitlistEntry) (bool, error)
	FindEarliest(ctx context.Context, slotID uuid.UUID) (*entity.WaitlistEntry, error)
	FindPageBySlot(ctx context.Context, slotID uuid.UUID, limit int) ([]*entity.WaitlistEntry, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type waitlistRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewWaitlistRepository(db database.Queryer, log *zap.Logger) WaitlistRepository {
	return &waitlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "waitlist")),
	}
}

const waitlistColumns = `id, slot_id, user_id, created_at`

func scanWaitlistEntry(row pgx.Row) (*entity.WaitlistEntry, error) {
	var entry entity.WaitlistEntry
	err := row.Scan(
		&entry.ID,
		&entry.SlotID,
		&entry.UserID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistRepository) CreateIfAbsent(ctx context.Context, entry *entity.WaitlistEntry) (bool, error) {
	query := `
		INSERT INTO waitlist_entries (id, slot_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slot_id, user_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.SlotID,
		entry.UserID,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create waitlist entry",
			zap.Error(err),
			zap.String("slot_id", entry.SlotID.String()),
			zap.String("user_id", entry.UserID),
		)
		return false, fmt.Errorf("create waitlist entry for slot %s: %w", entry.SlotID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// FindEarliest returns the first entry in promotion order: createdAt
// ascending, entry id as the stable tie-break.
func (r *waitlistRepository) FindEarliest(ctx context.Context, slotID uuid.UUID) (*entity.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE slot_id = $1
		ORDER BY created_at, id
		LIMIT 1
	`

	entry, err := scanWaitlistEntry(r.db.QueryRow(ctx, query, slotID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find earliest waitlist entry",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("find earliest waitlist entry for slot %s: %w", slotID.String(), err)
	}

	return entry, nil
}

// FindPageBySlot fetches a bounded unordered page of entries. The waitlist
// service sorts the page locally when the ordered query is unavailable.
func (r *waitlistRepository) FindPageBySlot(ctx context.Context, slotID uuid.UUID, limit int) ([]*entity.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + `
		FROM waitlist_entries
		WHERE slot_id = $1
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, slotID, limit)
	if err != nil {
		r.log.Error("Failed to page waitlist entries",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("page waitlist entries for slot %s: %w", slotID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.WaitlistEntry
	for rows.Next() {
		entry, err := scanWaitlistEntry(rows)
		if err != nil {
			r.log.Error("Failed to scan waitlist row", zap.Error(err))
			return nil, fmt.Errorf("scan waitlist row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// FindByIDForUpdate re-fetches and locks a previously selected entry so the
// promoting transaction can confirm it still exists before consuming it.
func (r *waitlistRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE id = $1 FOR UPDATE`

	entry, err := scanWaitlistEntry(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock waitlist entry",
			zap.Error(err),
			zap.String("entry_id", id.String()),
		)
		return nil, fmt.Errorf("lock waitlist entry %s: %w", id.String(), err)
	}

	return entry, nil
}

func (r *waitlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM waitlist_entries WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete waitlist entry",
			zap.Error(err),
			zap.String("entry_id", id.String()),
		)
		return fmt.Errorf("delete waitlist entry %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("waitlist entry %s not found", id.String())
	}

	return nil
}
