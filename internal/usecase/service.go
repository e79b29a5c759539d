package usecase

import (
	"slot-booking/internal/data/repository"
	"slot-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Coordinator CoordinatorService
	Slot        SlotService
	Booking     BookingService
	Waitlist    WaitlistService
	Schedule    ScheduleService
	Report      ReportService
	User        UserService
}

func NewService(atomic repository.Atomic, repo *repository.Repository, notifier Notifier, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Coordinator: NewCoordinatorService(atomic, repo, notifier, config.Booking, log),
		Slot:        NewSlotService(repo, config.Booking.ListWindowDays, log),
		Booking:     NewBookingService(repo, log),
		Waitlist:    NewWaitlistService(repo, config.Booking.WaitlistPage, log),
		Schedule:    NewScheduleService(repo, log),
		Report:      NewReportService(repo, log),
		User:        NewUserService(repo, log),
	}
}
