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

// ResourceRepository resolves resource and service names for listings,
// reports and notification summaries.
type ResourceRepository interface {
	FindResourceByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
}

type resourceRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewResourceRepository(db database.Queryer, log *zap.Logger) ResourceRepository {
	return &resourceRepository{
		db:  db,
		log: log.With(zap.String("repository", "resource")),
	}
}

func (r *resourceRepository) FindResourceByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	query := `SELECT id, name FROM resources WHERE id = $1`

	var resource entity.Resource
	err := r.db.QueryRow(ctx, query, id).Scan(&resource.ID, &resource.Name)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find resource by ID",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return nil, fmt.Errorf("find resource by ID %s: %w", id.String(), err)
	}

	return &resource, nil
}

func (r *resourceRepository) FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT id, name FROM services WHERE id = $1`

	var service entity.Service
	err := r.db.QueryRow(ctx, query, id).Scan(&service.ID, &service.Name)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return &service, nil
}
