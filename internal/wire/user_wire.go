package wire

import (
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/middleware"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))

		// POST /api/user/line-binding - Link a LINE account for notifications
		r.Post("/api/user/line-binding", userHandler.BindLine)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))
		r.Use(middleware.Admin(log))

		// PUT /api/admin/users/{id}/role - Grant ADMIN or MEMBER role
		r.Put("/api/admin/users/{id}/role", userHandler.GrantRole)
	})
}
