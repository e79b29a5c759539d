package usecase

import (
	"context"
	"testing"

	"slot-booking/internal/data/entity"
	"slot-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetUserBookingsOnlyOwn(t *testing.T) {
	store := newMemStore()
	slotA := store.addSlot(5, entity.SlotStatusOpen)
	slotB := store.addSlot(5, entity.SlotStatusOpen)
	coordinator, _ := newTestCoordinator(store)

	_, err := coordinator.Reserve(context.Background(), "user-1", slotA.ID)
	require.NoError(t, err)
	_, err = coordinator.Reserve(context.Background(), "user-1", slotB.ID)
	require.NoError(t, err)
	_, err = coordinator.Reserve(context.Background(), "user-2", slotA.ID)
	require.NoError(t, err)

	svc := NewBookingService(store.repos(), zapNop())
	page, err := svc.GetUserBookings(context.Background(), "user-1", &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	require.EqualValues(t, 2, page.Pagination.Total)
	for _, b := range page.Data {
		require.Equal(t, "user-1", b.UserID)
		require.NotNil(t, b.StartAt)
	}
}

func TestSetBookingStatus(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(5, entity.SlotStatusOpen)
	coordinator, _ := newTestCoordinator(store)

	resp, err := coordinator.Reserve(context.Background(), "user-1", slot.ID)
	require.NoError(t, err)
	bookingID := uuid.MustParse(resp.BookingID)

	svc := NewBookingService(store.repos(), zapNop())
	updated, err := svc.SetBookingStatus(context.Background(), bookingID, &request.UpdateBookingStatusRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusConfirmed, updated.Status)

	// status transitions alone never touch capacity
	require.Equal(t, 4, store.slots[slot.ID].Capacity)

	_, err = svc.SetBookingStatus(context.Background(), uuid.New(), &request.UpdateBookingStatusRequest{Status: "CONFIRMED"})
	require.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.SetBookingStatus(context.Background(), bookingID, &request.UpdateBookingStatusRequest{Status: "CANCELED"})
	require.Error(t, err)
}

func TestSetBookingStatusRejectsTerminal(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(5, entity.SlotStatusOpen)
	coordinator, _ := newTestCoordinator(store)

	resp, err := coordinator.Reserve(context.Background(), "user-1", slot.ID)
	require.NoError(t, err)
	bookingID := uuid.MustParse(resp.BookingID)
	require.NoError(t, coordinator.Cancel(context.Background(), "user-1", bookingID, false))

	// A canceled booking must not come back to life; otherwise the user
	// could reserve again and hold two active bookings on the slot.
	svc := NewBookingService(store.repos(), zapNop())
	_, err = svc.SetBookingStatus(context.Background(), bookingID, &request.UpdateBookingStatusRequest{Status: "CONFIRMED"})
	require.ErrorIs(t, err, ErrBookingFinal)
	require.Equal(t, entity.BookingStatusCanceled, store.bookings[bookingID].Status)

	_, err = coordinator.Reserve(context.Background(), "user-1", slot.ID)
	require.NoError(t, err)

	active := 0
	for _, b := range store.bookings {
		if b.SlotID == slot.ID && b.UserID == "user-1" && b.Active() {
			active++
		}
	}
	require.Equal(t, 1, active)
}
