package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"slot-booking/internal/data/repository"
	"slot-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService interface {
	Utilization(ctx context.Context, from time.Time, days int) (*response.UtilizationResponse, error)
	RecentNotifyLogs(ctx context.Context, limit int) ([]response.NotifyLogResponse, error)
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

const reportSlotLimit = 500

// Utilization summarizes how fully the window's slots are booked. Remaining
// capacity plus active bookings gives each slot's original size, so the
// ratio reflects places sold over places offered.
func (s *reportService) Utilization(ctx context.Context, from time.Time, days int) (*response.UtilizationResponse, error) {
	to := from.AddDate(0, 0, days)
	slots, err := s.repo.Slot.FindUpcoming(ctx, from, to, reportSlotLimit)
	if err != nil {
		return nil, fmt.Errorf("find slots for report: %w", err)
	}
	if len(slots) == 0 {
		return &response.UtilizationResponse{TopSlots: []response.SlotUtilization{}}, nil
	}

	slotIDs := make([]uuid.UUID, len(slots))
	for i, slot := range slots {
		slotIDs[i] = slot.ID
	}
	active, err := s.repo.Booking.CountActiveBySlotIDs(ctx, slotIDs)
	if err != nil {
		return nil, fmt.Errorf("count active bookings: %w", err)
	}

	names := newNameCache(s.repo)
	resp := &response.UtilizationResponse{
		SlotCount: len(slots),
		TopSlots:  make([]response.SlotUtilization, 0, len(slots)),
	}
	for _, slot := range slots {
		booked := active[slot.ID]
		resp.TotalCapacity += slot.Capacity + booked
		resp.ActiveBookings += booked

		resName, svcName := names.lookup(ctx, slot.ResourceID, slot.ServiceID)
		resp.TopSlots = append(resp.TopSlots, response.SlotUtilization{
			SlotID:       slot.ID.String(),
			StartAt:      slot.StartAt,
			EndAt:        slot.EndAt,
			ResourceName: resName,
			ServiceName:  svcName,
			Capacity:     slot.Capacity + booked,
			Active:       booked,
			Status:       string(slot.Status),
		})
	}
	if resp.TotalCapacity > 0 {
		resp.Utilization = float64(resp.ActiveBookings) / float64(resp.TotalCapacity)
	}

	sort.Slice(resp.TopSlots, func(i, j int) bool {
		return resp.TopSlots[i].Active > resp.TopSlots[j].Active
	})
	if len(resp.TopSlots) > 10 {
		resp.TopSlots = resp.TopSlots[:10]
	}
	return resp, nil
}

func (s *reportService) RecentNotifyLogs(ctx context.Context, limit int) ([]response.NotifyLogResponse, error) {
	logs, err := s.repo.NotifyLog.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("find notify logs: %w", err)
	}

	out := make([]response.NotifyLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, response.NotifyLogResponse{
			ID:        l.ID.String(),
			Kind:      string(l.Kind),
			UserID:    l.UserID,
			SlotID:    l.SlotID.String(),
			BookingID: l.BookingID.String(),
			OK:        l.OK,
			Skipped:   l.Skipped,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}
