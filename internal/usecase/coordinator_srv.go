package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/response"
	"slot-booking/internal/notify"
	"slot-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier receives post-commit events. Satisfied by notify.Dispatcher.
type Notifier interface {
	Dispatch(ctx context.Context, event notify.Event)
}

type CoordinatorService interface {
	// Public
	Reserve(ctx context.Context, userID string, slotID uuid.UUID) (*response.ReserveResponse, error)
	Cancel(ctx context.Context, userID string, bookingID uuid.UUID, adminOverride bool) error

	// Admin
	AdjustCapacity(ctx context.Context, slotID uuid.UUID, delta int) (*response.SlotStateResponse, error)
	ToggleStatus(ctx context.Context, slotID uuid.UUID) (*response.SlotStateResponse, error)
	PromoteFromWaitlist(ctx context.Context, slotID uuid.UUID) (*response.PromoteResponse, error)
}

// coordinatorService runs every state-changing booking operation as one
// atomic transaction. All reads and writes of an operation happen against
// the same locked slot row, so invariants hold under concurrent callers.
type coordinatorService struct {
	atomic   repository.Atomic
	repo     *repository.Repository
	notifier Notifier
	cfg      utils.BookingConfig
	log      *zap.Logger
}

func NewCoordinatorService(atomic repository.Atomic, repo *repository.Repository, notifier Notifier, cfg utils.BookingConfig, log *zap.Logger) CoordinatorService {
	return &coordinatorService{
		atomic:   atomic,
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		log:      log.With(zap.String("service", "coordinator")),
	}
}

func (s *coordinatorService) Reserve(ctx context.Context, userID string, slotID uuid.UUID) (*response.ReserveResponse, error) {
	var booking *entity.Booking
	var slot *entity.Slot

	err := s.atomic.InTx(ctx, func(r *repository.Repository) error {
		var err error
		slot, err = r.Slot.FindByIDForUpdate(ctx, slotID)
		if err != nil {
			return fmt.Errorf("lock slot %s: %w", slotID, err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		if slot.Status == entity.SlotStatusClosed {
			return ErrSlotNotOpen
		}
		if slot.Status == entity.SlotStatusFull || slot.Capacity <= 0 {
			return ErrSlotFull
		}

		exists, err := r.BookingKey.Exists(ctx, slotID, userID)
		if err != nil {
			return fmt.Errorf("check booking key: %w", err)
		}
		if exists {
			return ErrAlreadyBooked
		}

		booking = &entity.Booking{
			ID:         uuid.New(),
			SlotID:     slot.ID,
			ResourceID: slot.ResourceID,
			ServiceID:  slot.ServiceID,
			UserID:     userID,
			Status:     entity.BookingStatusPending,
			Source:     entity.BookingSourcePublic,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.writeReservation(ctx, r, slot, booking); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", slotID.String()),
		zap.String("user_id", userID))

	summary := s.slotSummary(ctx, slot)
	s.notifier.Dispatch(ctx, notify.Event{
		Kind:      notify.KindAdmin,
		SlotID:    slot.ID,
		BookingID: booking.ID,
		UserID:    userID,
		Summary:   "New reservation: " + summary,
	})
	s.notifier.Dispatch(ctx, notify.Event{
		Kind:      notify.KindUser,
		SlotID:    slot.ID,
		BookingID: booking.ID,
		UserID:    userID,
		Summary:   "Your reservation is received: " + summary,
	})

	return &response.ReserveResponse{
		BookingID: booking.ID.String(),
		SlotID:    slot.ID.String(),
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt,
	}, nil
}

// writeReservation applies the shared Reserve/Promote effect: decrement
// capacity, flip to FULL at zero, persist the booking and its uniqueness
// key. Must run inside the transaction that locked the slot.
func (s *coordinatorService) writeReservation(ctx context.Context, r *repository.Repository, slot *entity.Slot, booking *entity.Booking) error {
	newCap := slot.Capacity - 1
	newStatus := entity.SlotStatusOpen
	if newCap == 0 {
		newStatus = entity.SlotStatusFull
	}
	if err := r.Slot.UpdateCapacityStatus(ctx, slot.ID, newCap, newStatus); err != nil {
		return fmt.Errorf("update slot %s: %w", slot.ID, err)
	}
	slot.Capacity = newCap
	slot.Status = newStatus

	if err := r.Booking.Create(ctx, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	key := &entity.BookingKey{
		Key:       entity.BookingKeyFor(slot.ID, booking.UserID),
		SlotID:    slot.ID,
		UserID:    booking.UserID,
		BookingID: booking.ID,
		CreatedAt: booking.CreatedAt,
	}
	if err := r.BookingKey.Create(ctx, key); err != nil {
		if errors.Is(err, repository.ErrKeyExists) {
			return ErrAlreadyBooked
		}
		return fmt.Errorf("create booking key: %w", err)
	}
	return nil
}

func (s *coordinatorService) Cancel(ctx context.Context, userID string, bookingID uuid.UUID, adminOverride bool) error {
	var booking *entity.Booking
	var slot *entity.Slot

	err := s.atomic.InTx(ctx, func(r *repository.Repository) error {
		var err error
		booking, err = r.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("lock booking %s: %w", bookingID, err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if !adminOverride && booking.UserID != userID {
			return ErrForbidden
		}
		if !booking.Active() {
			return ErrNotCancelable
		}

		slot, err = r.Slot.FindByIDForUpdate(ctx, booking.SlotID)
		if err != nil {
			return fmt.Errorf("lock slot %s: %w", booking.SlotID, err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		// Returning a place reopens a FULL slot, but never one an admin
		// closed on purpose.
		newStatus := slot.Status
		if newStatus != entity.SlotStatusClosed {
			newStatus = entity.SlotStatusOpen
		}
		if err := r.Slot.UpdateCapacityStatus(ctx, slot.ID, slot.Capacity+1, newStatus); err != nil {
			return fmt.Errorf("update slot %s: %w", slot.ID, err)
		}
		slot.Capacity++
		slot.Status = newStatus

		if err := r.Booking.MarkCanceled(ctx, booking.ID, time.Now().UTC()); err != nil {
			return fmt.Errorf("mark booking canceled: %w", err)
		}
		if err := r.BookingKey.Delete(ctx, slot.ID, booking.UserID); err != nil {
			return fmt.Errorf("delete booking key: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Reservation canceled",
		zap.String("booking_id", bookingID.String()),
		zap.String("slot_id", slot.ID.String()),
		zap.Bool("admin_override", adminOverride))

	summary := s.slotSummary(ctx, slot)
	s.notifier.Dispatch(ctx, notify.Event{
		Kind:      notify.KindAdmin,
		SlotID:    slot.ID,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Summary:   "Reservation canceled: " + summary,
	})
	s.notifier.Dispatch(ctx, notify.Event{
		Kind:      notify.KindUser,
		SlotID:    slot.ID,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Summary:   "Your reservation was canceled: " + summary,
	})
	return nil
}

func (s *coordinatorService) AdjustCapacity(ctx context.Context, slotID uuid.UUID, delta int) (*response.SlotStateResponse, error) {
	var state response.SlotStateResponse

	err := s.atomic.InTx(ctx, func(r *repository.Repository) error {
		slot, err := r.Slot.FindByIDForUpdate(ctx, slotID)
		if err != nil {
			return fmt.Errorf("lock slot %s: %w", slotID, err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		newCap := slot.Capacity + delta
		if newCap < 0 {
			newCap = 0
		}
		// Zero capacity always reads as FULL, even on a CLOSED slot. A
		// positive capacity reopens only slots an admin has not closed.
		newStatus := slot.Status
		if newCap == 0 {
			newStatus = entity.SlotStatusFull
		} else if newStatus != entity.SlotStatusClosed {
			newStatus = entity.SlotStatusOpen
		}
		if err := r.Slot.UpdateCapacityStatus(ctx, slot.ID, newCap, newStatus); err != nil {
			return fmt.Errorf("update slot %s: %w", slot.ID, err)
		}

		state = response.SlotStateResponse{
			SlotID:   slot.ID.String(),
			Capacity: newCap,
			Status:   newStatus,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Capacity adjusted",
		zap.String("slot_id", slotID.String()),
		zap.Int("delta", delta),
		zap.Int("capacity", state.Capacity),
		zap.String("status", string(state.Status)))
	return &state, nil
}

func (s *coordinatorService) ToggleStatus(ctx context.Context, slotID uuid.UUID) (*response.SlotStateResponse, error) {
	var state response.SlotStateResponse

	err := s.atomic.InTx(ctx, func(r *repository.Repository) error {
		slot, err := r.Slot.FindByIDForUpdate(ctx, slotID)
		if err != nil {
			return fmt.Errorf("lock slot %s: %w", slotID, err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		newCap := slot.Capacity
		var newStatus entity.SlotStatus
		if slot.Status == entity.SlotStatusClosed {
			newStatus = entity.SlotStatusOpen
			if newCap < 1 {
				newCap = 1
			}
		} else {
			newStatus = entity.SlotStatusClosed
		}
		if err := r.Slot.UpdateCapacityStatus(ctx, slot.ID, newCap, newStatus); err != nil {
			return fmt.Errorf("update slot %s: %w", slot.ID, err)
		}

		state = response.SlotStateResponse{
			SlotID:   slot.ID.String(),
			Capacity: newCap,
			Status:   newStatus,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Slot status toggled",
		zap.String("slot_id", slotID.String()),
		zap.String("status", string(state.Status)))
	return &state, nil
}

func (s *coordinatorService) PromoteFromWaitlist(ctx context.Context, slotID uuid.UUID) (*response.PromoteResponse, error) {
	// Candidate selection runs outside the transaction; eligibility is
	// re-checked once the slot row is locked, so a concurrently consumed
	// entry fails closed instead of promoting twice.
	candidate, err := peekEarliest(ctx, s.repo, slotID, s.cfg.WaitlistPage)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrNoWaitlistEntry
	}

	var booking *entity.Booking
	var slot *entity.Slot

	err = s.atomic.InTx(ctx, func(r *repository.Repository) error {
		var err error
		slot, err = r.Slot.FindByIDForUpdate(ctx, slotID)
		if err != nil {
			return fmt.Errorf("lock slot %s: %w", slotID, err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		if slot.Status == entity.SlotStatusClosed {
			return ErrSlotNotOpen
		}
		if slot.Status == entity.SlotStatusFull || slot.Capacity <= 0 {
			return ErrSlotFull
		}

		entry, err := r.Waitlist.FindByIDForUpdate(ctx, candidate.ID)
		if err != nil {
			return fmt.Errorf("lock waitlist entry %s: %w", candidate.ID, err)
		}
		if entry == nil {
			return ErrNoWaitlistEntry
		}

		exists, err := r.BookingKey.Exists(ctx, slotID, entry.UserID)
		if err != nil {
			return fmt.Errorf("check booking key: %w", err)
		}
		if exists {
			// The user booked on their own in the meantime. The entry is
			// left in place so an operator can see the conflict.
			return ErrAlreadyBooked
		}

		booking = &entity.Booking{
			ID:         uuid.New(),
			SlotID:     slot.ID,
			ResourceID: slot.ResourceID,
			ServiceID:  slot.ServiceID,
			UserID:     entry.UserID,
			Status:     entity.BookingStatusPending,
			Source:     entity.BookingSourceAdmin,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.writeReservation(ctx, r, slot, booking); err != nil {
			return err
		}
		if err := r.Waitlist.Delete(ctx, entry.ID); err != nil {
			return fmt.Errorf("delete waitlist entry %s: %w", entry.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Waitlist entry promoted",
		zap.String("slot_id", slotID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", booking.UserID))

	summary := s.slotSummary(ctx, slot)
	s.notifier.Dispatch(ctx, notify.Event{
		Kind:      notify.KindAdmin,
		SlotID:    slot.ID,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Summary:   "Waitlist promotion: " + summary,
	})
	s.notifier.Dispatch(ctx, notify.Event{
		Kind:      notify.KindUser,
		SlotID:    slot.ID,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Summary:   "A place opened up and you are booked: " + summary,
	})

	return &response.PromoteResponse{
		BookingID: booking.ID.String(),
		UserID:    booking.UserID,
		SlotID:    slot.ID.String(),
	}, nil
}

// slotSummary builds a human-readable line for notifications. Name lookups
// are best effort; the slot id stands in when they fail.
func (s *coordinatorService) slotSummary(ctx context.Context, slot *entity.Slot) string {
	when := slot.StartAt.Format("2006-01-02 15:04")
	svc, err := s.repo.Resource.FindServiceByID(ctx, slot.ServiceID)
	if err != nil || svc == nil {
		return fmt.Sprintf("slot %s at %s", slot.ID, when)
	}
	res, err := s.repo.Resource.FindResourceByID(ctx, slot.ResourceID)
	if err != nil || res == nil {
		return fmt.Sprintf("%s at %s", svc.Name, when)
	}
	return fmt.Sprintf("%s with %s at %s", svc.Name, res.Name, when)
}
