package repository

import (
	"context"
	"fmt"

	"slot-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type LineBindingRepository interface {
	// FindLineUserID returns the LINE recipient for a user, or "" when the
	// user never linked an account.
	FindLineUserID(ctx context.Context, userID string) (string, error)
	Bind(ctx context.Context, userID, lineUserID string) error
}

type lineBindingRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewLineBindingRepository(db database.Queryer, log *zap.Logger) LineBindingRepository {
	return &lineBindingRepository{
		db:  db,
		log: log.With(zap.String("repository", "line_binding")),
	}
}

func (r *lineBindingRepository) FindLineUserID(ctx context.Context, userID string) (string, error) {
	query := `SELECT line_user_id FROM line_bindings WHERE user_id = $1`

	var lineUserID string
	err := r.db.QueryRow(ctx, query, userID).Scan(&lineUserID)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.log.Error("Failed to find line binding",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return "", fmt.Errorf("find line binding for user %s: %w", userID, err)
	}

	return lineUserID, nil
}

func (r *lineBindingRepository) Bind(ctx context.Context, userID, lineUserID string) error {
	query := `
		INSERT INTO line_bindings (user_id, line_user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET line_user_id = EXCLUDED.line_user_id
	`

	_, err := r.db.Exec(ctx, query, userID, lineUserID)
	if err != nil {
		r.log.Error("Failed to bind line user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("bind line user for %s: %w", userID, err)
	}

	return nil
}
