package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slot-booking/internal/dto/response"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/database"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCoordinator returns the configured error from every operation, or a
// canned success when err is nil.
type stubCoordinator struct {
	err error
}

func (s *stubCoordinator) Reserve(ctx context.Context, userID string, slotID uuid.UUID) (*response.ReserveResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.ReserveResponse{
		BookingID: uuid.New().String(),
		SlotID:    slotID.String(),
		Status:    "PENDING",
		CreatedAt: time.Now(),
	}, nil
}

func (s *stubCoordinator) Cancel(ctx context.Context, userID string, bookingID uuid.UUID, adminOverride bool) error {
	return s.err
}

func (s *stubCoordinator) AdjustCapacity(ctx context.Context, slotID uuid.UUID, delta int) (*response.SlotStateResponse, error) {
	return nil, s.err
}

func (s *stubCoordinator) ToggleStatus(ctx context.Context, slotID uuid.UUID) (*response.SlotStateResponse, error) {
	return nil, s.err
}

func (s *stubCoordinator) PromoteFromWaitlist(ctx context.Context, slotID uuid.UUID) (*response.PromoteResponse, error) {
	return nil, s.err
}

func reserveRequest(t *testing.T, handler http.HandlerFunc, withIdentity bool) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/slots/{id}/reserve", handler)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/slots/%s/reserve", uuid.New()), nil)
	if withIdentity {
		req = req.WithContext(utils.SetUserContext(req.Context(), "user-1", "MEMBER"))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestReserveStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusCreated},
		{"slot not found", usecase.ErrSlotNotFound, http.StatusNotFound},
		{"slot closed", usecase.ErrSlotNotOpen, http.StatusConflict},
		{"slot full", usecase.ErrSlotFull, http.StatusConflict},
		{"already booked", usecase.ErrAlreadyBooked, http.StatusConflict},
		{"contention", fmt.Errorf("%w: gave up", database.ErrTxConflict), http.StatusConflict},
		{"timeout", fmt.Errorf("%w: deadline", database.ErrTxTimeout), http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBookingHandler(nil, &stubCoordinator{err: tc.err}, zap.NewNop())
			rec := reserveRequest(t, h.Reserve, true)
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestReserveRequiresIdentity(t *testing.T) {
	h := NewBookingHandler(nil, &stubCoordinator{}, zap.NewNop())
	rec := reserveRequest(t, h.Reserve, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReserveRejectsBadSlotID(t *testing.T) {
	h := NewBookingHandler(nil, &stubCoordinator{}, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/slots/{id}/reserve", h.Reserve)
	req := httptest.NewRequest(http.MethodPost, "/api/slots/not-a-uuid/reserve", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), "user-1", "MEMBER"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusOK},
		{"booking not found", usecase.ErrBookingNotFound, http.StatusNotFound},
		{"not owner", usecase.ErrForbidden, http.StatusForbidden},
		{"already canceled", usecase.ErrNotCancelable, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBookingHandler(nil, &stubCoordinator{err: tc.err}, zap.NewNop())

			r := chi.NewRouter()
			r.Post("/api/bookings/{id}/cancel", h.CancelBooking)
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/bookings/%s/cancel", uuid.New()), nil)
			req = req.WithContext(utils.SetUserContext(req.Context(), "user-1", "MEMBER"))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
		})
	}
}
