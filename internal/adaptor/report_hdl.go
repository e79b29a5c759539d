package adaptor

import (
	"net/http"
	"time"

	"slot-booking/internal/usecase"
	"slot-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// Utilization handles GET /api/admin/reports/utilization (admin only)
func (h *ReportHandler) Utilization(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := utils.ParseDate(query.Get("from"), time.Now().UTC())
	days := utils.ParseInt(query.Get("days"), 7)

	report, err := h.service.Utilization(r.Context(), from, days)
	if err != nil {
		h.log.Error("Failed to build utilization report", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// NotifyLogs handles GET /api/admin/notify-logs (admin only)
func (h *ReportHandler) NotifyLogs(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 50)

	logs, err := h.service.RecentNotifyLogs(r.Context(), limit)
	if err != nil {
		h.log.Error("Failed to list notify logs", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", logs)
}
