package usecase

import (
	"context"
	"fmt"
	"time"

	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotService interface {
	ListUpcoming(ctx context.Context, from time.Time, days, limit int) ([]response.SlotResponse, error)
	GetSlot(ctx context.Context, slotID uuid.UUID) (*response.SlotResponse, error)
}

type slotService struct {
	repo       *repository.Repository
	windowDays int
	log        *zap.Logger
}

func NewSlotService(repo *repository.Repository, windowDays int, log *zap.Logger) SlotService {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &slotService{
		repo:       repo,
		windowDays: windowDays,
		log:        log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) ListUpcoming(ctx context.Context, from time.Time, days, limit int) ([]response.SlotResponse, error) {
	if days <= 0 {
		days = s.windowDays
	}
	to := from.AddDate(0, 0, days)
	slots, err := s.repo.Slot.FindUpcoming(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("find upcoming slots: %w", err)
	}

	names := newNameCache(s.repo)
	out := make([]response.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		resName, svcName := names.lookup(ctx, slot.ResourceID, slot.ServiceID)
		out = append(out, response.SlotToResponse(slot, resName, svcName))
	}
	return out, nil
}

func (s *slotService) GetSlot(ctx context.Context, slotID uuid.UUID) (*response.SlotResponse, error) {
	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	names := newNameCache(s.repo)
	resName, svcName := names.lookup(ctx, slot.ResourceID, slot.ServiceID)
	resp := response.SlotToResponse(slot, resName, svcName)
	return &resp, nil
}

// nameCache memoizes resource and service display names within one request
// so a listing does not repeat the same lookups per slot.
type nameCache struct {
	repo      *repository.Repository
	resources map[uuid.UUID]string
	services  map[uuid.UUID]string
}

func newNameCache(repo *repository.Repository) *nameCache {
	return &nameCache{
		repo:      repo,
		resources: make(map[uuid.UUID]string),
		services:  make(map[uuid.UUID]string),
	}
}

func (c *nameCache) lookup(ctx context.Context, resourceID, serviceID uuid.UUID) (string, string) {
	resName, ok := c.resources[resourceID]
	if !ok {
		if res, err := c.repo.Resource.FindResourceByID(ctx, resourceID); err == nil && res != nil {
			resName = res.Name
		}
		c.resources[resourceID] = resName
	}
	svcName, ok := c.services[serviceID]
	if !ok {
		if svc, err := c.repo.Resource.FindServiceByID(ctx, serviceID); err == nil && svc != nil {
			svcName = svc.Name
		}
		c.services[serviceID] = svcName
	}
	return resName, svcName
}
