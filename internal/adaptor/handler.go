package adaptor

import (
	"slot-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Slot     *SlotHandler
	Booking  *BookingHandler
	Waitlist *WaitlistHandler
	Report   *ReportHandler
	User     *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Slot:     NewSlotHandler(service.Slot, service.Coordinator, service.Schedule, log),
		Booking:  NewBookingHandler(service.Booking, service.Coordinator, log),
		Waitlist: NewWaitlistHandler(service.Waitlist, service.Coordinator, log),
		Report:   NewReportHandler(service.Report, log),
		User:     NewUserHandler(service.User, log),
	}
}
