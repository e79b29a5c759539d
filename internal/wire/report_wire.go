package wire

import (
	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/middleware"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(repo.UserRole, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/reports/utilization - Booking utilization summary
		r.Get("/api/admin/reports/utilization", reportHandler.Utilization)

		// GET /api/admin/notify-logs - Recent notification delivery attempts
		r.Get("/api/admin/notify-logs", reportHandler.NotifyLogs)
	})
}
