package repository

import (
	"context"
	"fmt"

	"slot-booking/internal/data/entity"
	"slot-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRoleRepository interface {
	// FindRole returns the stored role, defaulting to MEMBER when no row exists.
	FindRole(ctx context.Context, userID string) (entity.Role, error)
	Grant(ctx context.Context, userID string, role entity.Role) error
}

type userRoleRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewUserRoleRepository(db database.Queryer, log *zap.Logger) UserRoleRepository {
	return &userRoleRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_role")),
	}
}

func (r *userRoleRepository) FindRole(ctx context.Context, userID string) (entity.Role, error) {
	query := `SELECT role FROM user_roles WHERE user_id = $1`

	var role entity.Role
	err := r.db.QueryRow(ctx, query, userID).Scan(&role)
	if err == pgx.ErrNoRows {
		return entity.RoleMember, nil
	}
	if err != nil {
		r.log.Error("Failed to find user role",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return "", fmt.Errorf("find role for user %s: %w", userID, err)
	}

	return role, nil
}

func (r *userRoleRepository) Grant(ctx context.Context, userID string, role entity.Role) error {
	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`

	_, err := r.db.Exec(ctx, query, userID, role)
	if err != nil {
		r.log.Error("Failed to grant role",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("role", string(role)),
		)
		return fmt.Errorf("grant role %s to user %s: %w", string(role), userID, err)
	}

	return nil
}
