package usecase

import (
	"context"
	"fmt"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/request"
	"slot-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// BindLine links the caller to a LINE recipient for notifications.
	BindLine(ctx context.Context, userID string, req *request.BindLineRequest) error

	// Admin
	GrantRole(ctx context.Context, userID string, req *request.GrantRoleRequest) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) BindLine(ctx context.Context, userID string, req *request.BindLineRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.repo.LineBinding.Bind(ctx, userID, req.LineUserID); err != nil {
		return fmt.Errorf("bind line account for %s: %w", userID, err)
	}

	s.log.Info("LINE account bound", zap.String("user_id", userID))
	return nil
}

func (s *userService) GrantRole(ctx context.Context, userID string, req *request.GrantRoleRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.repo.UserRole.Grant(ctx, userID, entity.Role(req.Role)); err != nil {
		return fmt.Errorf("grant role to %s: %w", userID, err)
	}

	s.log.Info("Role granted",
		zap.String("user_id", userID),
		zap.String("role", req.Role))
	return nil
}
