package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WaitlistService interface {
	Join(ctx context.Context, userID string, slotID uuid.UUID) (*response.WaitlistJoinResponse, error)
	PeekEarliest(ctx context.Context, slotID uuid.UUID) (*response.WaitlistEntryResponse, error)
}

type waitlistService struct {
	repo     *repository.Repository
	pageSize int
	log      *zap.Logger
}

func NewWaitlistService(repo *repository.Repository, pageSize int, log *zap.Logger) WaitlistService {
	return &waitlistService{
		repo:     repo,
		pageSize: pageSize,
		log:      log.With(zap.String("service", "waitlist")),
	}
}

// Join adds the user to the slot's waitlist. Calling it again for the same
// pair is a no-op; Created reports whether this call inserted the entry.
func (s *waitlistService) Join(ctx context.Context, userID string, slotID uuid.UUID) (*response.WaitlistJoinResponse, error) {
	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	entry := &entity.WaitlistEntry{
		SlotID: slotID,
		UserID: userID,
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()
	created, err := s.repo.Waitlist.CreateIfAbsent(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("join waitlist: %w", err)
	}

	if created {
		s.log.Info("Waitlist joined",
			zap.String("slot_id", slotID.String()),
			zap.String("user_id", userID))
	}
	return &response.WaitlistJoinResponse{
		SlotID:  slotID.String(),
		UserID:  userID,
		Created: created,
	}, nil
}

func (s *waitlistService) PeekEarliest(ctx context.Context, slotID uuid.UUID) (*response.WaitlistEntryResponse, error) {
	entry, err := peekEarliest(ctx, s.repo, slotID, s.pageSize)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNoWaitlistEntry
	}
	return &response.WaitlistEntryResponse{
		ID:        entry.ID.String(),
		SlotID:    entry.SlotID.String(),
		UserID:    entry.UserID,
		CreatedAt: entry.CreatedAt,
	}, nil
}

// peekEarliest returns the slot's earliest waitlist entry without mutating
// anything. It asks the store for a server-ordered single row first and
// falls back to a bounded page sorted locally, so earliest-first selection
// survives a store that cannot serve the compound sort.
func peekEarliest(ctx context.Context, repo *repository.Repository, slotID uuid.UUID, pageSize int) (*entity.WaitlistEntry, error) {
	entry, err := repo.Waitlist.FindEarliest(ctx, slotID)
	if err == nil {
		return entry, nil
	}

	entries, pageErr := repo.Waitlist.FindPageBySlot(ctx, slotID, pageSize)
	if pageErr != nil {
		return nil, fmt.Errorf("peek waitlist for slot %s: %w", slotID, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
	return entries[0], nil
}
