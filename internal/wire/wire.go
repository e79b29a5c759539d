// internal/wire/wire.go
package wire

import (
	"net/http"

	"slot-booking/internal/adaptor"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/middleware"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(atomic repository.Atomic, repo *repository.Repository, notifier usecase.Notifier, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(atomic, repo, notifier, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireSlot(r, handler.Slot, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireWaitlist(r, handler.Waitlist, repo, config, logger)
	wireReport(r, handler.Report, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
