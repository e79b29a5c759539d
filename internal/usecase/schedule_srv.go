package usecase

import (
	"context"
	"fmt"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/request"
	"slot-booking/internal/dto/response"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	Generate(ctx context.Context, req *request.GenerateScheduleRequest) (*response.GenerateScheduleResponse, error)
}

type scheduleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo: repo,
		log:  log.With(zap.String("service", "schedule")),
	}
}

// Generate expands a recurrence rule into OPEN slots. Generation is
// insert-only: a slot that already exists for (resource, startAt) is
// skipped, so re-running the same rule never clobbers live bookings.
func (s *scheduleService) Generate(ctx context.Context, req *request.GenerateScheduleRequest) (*response.GenerateScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Generate schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", req.ResourceID, err)
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	resource, err := s.repo.Resource.FindResourceByID(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("find resource %s: %w", resourceID, err)
	}
	if resource == nil {
		return nil, fmt.Errorf("resource %s not found", req.ResourceID)
	}
	service, err := s.repo.Resource.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find service %s: %w", serviceID, err)
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	fromDate, _ := time.Parse("2006-01-02", req.FromDate)
	toDate, _ := time.Parse("2006-01-02", req.ToDate)
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("to_date %s is before from_date %s", req.ToDate, req.FromDate)
	}
	dayStart, _ := time.Parse("15:04", req.DayStart)
	dayEnd, _ := time.Parse("15:04", req.DayEnd)
	if !dayStart.Before(dayEnd) {
		return nil, fmt.Errorf("day_start %s is not before day_end %s", req.DayStart, req.DayEnd)
	}

	weekdays := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		weekdays[time.Weekday(wd)] = true
	}
	step := time.Duration(req.SlotMinutes) * time.Minute

	now := time.Now().UTC()
	var created, skipped int
	for day := fromDate; !day.After(toDate); day = day.AddDate(0, 0, 1) {
		if !weekdays[day.Weekday()] {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), dayStart.Hour(), dayStart.Minute(), 0, 0, time.UTC)
		end := time.Date(day.Year(), day.Month(), day.Day(), dayEnd.Hour(), dayEnd.Minute(), 0, 0, time.UTC)

		for at := start; !at.Add(step).After(end); at = at.Add(step) {
			slot := &entity.Slot{
				ResourceID: resourceID,
				ServiceID:  serviceID,
				StartAt:    at,
				EndAt:      at.Add(step),
				Capacity:   req.Capacity,
				Status:     entity.SlotStatusOpen,
			}
			slot.ID = uuid.New()
			slot.CreatedAt = now
			slot.UpdatedAt = now
			inserted, err := s.repo.Slot.Create(ctx, slot)
			if err != nil {
				return nil, fmt.Errorf("create slot at %s: %w", at.Format(time.RFC3339), err)
			}
			if inserted {
				created++
			} else {
				skipped++
			}
		}
	}

	s.log.Info("Schedule generated",
		zap.String("resource_id", req.ResourceID),
		zap.Int("created", created),
		zap.Int("skipped", skipped))
	return &response.GenerateScheduleResponse{Created: created, Skipped: skipped}, nil
}
