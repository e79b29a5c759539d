package usecase

import (
	"context"
	"fmt"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/request"
	"slot-booking/internal/dto/response"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin: administrative status transitions carry no capacity side
	// effects, so they bypass the coordinator.
	SetBookingStatus(ctx context.Context, bookingID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find bookings for user %s: %w", userID, err)
	}
	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookings for user %s: %w", userID, err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, s.toBookingResponse(ctx, b))
	}

	return response.NewPaginatedResponse(items, req.Page, limit, total), nil
}

func (s *bookingService) SetBookingStatus(ctx context.Context, bookingID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	// A canceled, no-show or completed booking no longer holds a place
	// and carries no uniqueness key. Reviving it here would let the same
	// user hold two active bookings on the slot, so terminal is terminal.
	if !booking.Active() {
		return nil, ErrBookingFinal
	}

	status := entity.BookingStatus(req.Status)
	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, fmt.Errorf("update booking %s status: %w", bookingID, err)
	}
	booking.Status = status

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", req.Status))

	resp := s.toBookingResponse(ctx, booking)
	return &resp, nil
}

// toBookingResponse enriches a booking with slot timing and display names.
// Lookups are best effort so a missing reference never breaks history.
func (s *bookingService) toBookingResponse(ctx context.Context, b *entity.Booking) response.BookingResponse {
	resp := response.BookingResponse{
		ID:         b.ID.String(),
		SlotID:     b.SlotID.String(),
		UserID:     b.UserID,
		Status:     b.Status,
		Source:     b.Source,
		CreatedAt:  b.CreatedAt,
		CanceledAt: b.CanceledAt,
	}
	if slot, err := s.repo.Slot.FindByID(ctx, b.SlotID); err == nil && slot != nil {
		resp.StartAt = &slot.StartAt
		resp.EndAt = &slot.EndAt
	}
	if svc, err := s.repo.Resource.FindServiceByID(ctx, b.ServiceID); err == nil && svc != nil {
		resp.ServiceName = svc.Name
	}
	if res, err := s.repo.Resource.FindResourceByID(ctx, b.ResourceID); err == nil && res != nil {
		resp.ResourceName = res.Name
	}
	return resp
}
