package repository

import (
	"context"
	"fmt"

	"slot-booking/internal/data/entity"
	"slot-booking/pkg/database"

	"go.uber.org/zap"
)

type NotifyLogRepository interface {
	Create(ctx context.Context, log *entity.NotifyLog) error
	FindRecent(ctx context.Context, limit int) ([]*entity.NotifyLog, error)
}

type notifyLogRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewNotifyLogRepository(db database.Queryer, log *zap.Logger) NotifyLogRepository {
	return &notifyLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "notify_log")),
	}
}

func (r *notifyLogRepository) Create(ctx context.Context, entry *entity.NotifyLog) error {
	query := `
		INSERT INTO notify_logs (id, kind, user_id, slot_id, booking_id, ok, skipped, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Kind,
		entry.UserID,
		entry.SlotID,
		entry.BookingID,
		entry.OK,
		entry.Skipped,
		entry.Detail,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notify log",
			zap.Error(err),
			zap.String("kind", string(entry.Kind)),
		)
		return fmt.Errorf("create notify log: %w", err)
	}

	return nil
}

func (r *notifyLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.NotifyLog, error) {
	query := `
		SELECT id, kind, user_id, slot_id, booking_id, ok, skipped, detail, created_at
		FROM notify_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent notify logs", zap.Error(err))
		return nil, fmt.Errorf("find recent notify logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.NotifyLog
	for rows.Next() {
		var entry entity.NotifyLog
		err := rows.Scan(
			&entry.ID,
			&entry.Kind,
			&entry.UserID,
			&entry.SlotID,
			&entry.BookingID,
			&entry.OK,
			&entry.Skipped,
			&entry.Detail,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan notify log row", zap.Error(err))
			return nil, fmt.Errorf("scan notify log row: %w", err)
		}
		logs = append(logs, &entry)
	}

	return logs, nil
}
