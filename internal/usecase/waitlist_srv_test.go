package usecase

import (
	"context"
	"testing"
	"time"

	"slot-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJoinWaitlistIdempotent(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(0, entity.SlotStatusFull)
	svc := NewWaitlistService(store.repos(), 50, zapNop())

	first, err := svc.Join(context.Background(), "user-1", slot.ID)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := svc.Join(context.Background(), "user-1", slot.ID)
	require.NoError(t, err)
	require.False(t, second.Created)

	require.Len(t, store.waitlist, 1)
}

func TestJoinWaitlistUnknownSlot(t *testing.T) {
	store := newMemStore()
	svc := NewWaitlistService(store.repos(), 50, zapNop())

	_, err := svc.Join(context.Background(), "user-1", uuid.New())
	require.ErrorIs(t, err, ErrSlotNotFound)
}

func TestPeekEarliestOrder(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(0, entity.SlotStatusFull)
	base := time.Now().Add(-time.Hour)
	store.addWaitlistEntry(slot.ID, "third", base.Add(2*time.Minute))
	store.addWaitlistEntry(slot.ID, "first", base)
	store.addWaitlistEntry(slot.ID, "second", base.Add(time.Minute))
	svc := NewWaitlistService(store.repos(), 50, zapNop())

	entry, err := svc.PeekEarliest(context.Background(), slot.ID)
	require.NoError(t, err)
	require.Equal(t, "first", entry.UserID)

	// peeking again returns the same entry, nothing was consumed
	again, err := svc.PeekEarliest(context.Background(), slot.ID)
	require.NoError(t, err)
	require.Equal(t, entry.ID, again.ID)
	require.Len(t, store.waitlist, 3)
}

func TestPeekEarliestFallback(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(0, entity.SlotStatusFull)
	base := time.Now().Add(-time.Hour)
	store.addWaitlistEntry(slot.ID, "second", base.Add(time.Minute))
	store.addWaitlistEntry(slot.ID, "first", base)
	store.failEarliest = true
	svc := NewWaitlistService(store.repos(), 50, zapNop())

	entry, err := svc.PeekEarliest(context.Background(), slot.ID)
	require.NoError(t, err)
	require.Equal(t, "first", entry.UserID)
}

func TestPeekEarliestEmpty(t *testing.T) {
	store := newMemStore()
	slot := store.addSlot(0, entity.SlotStatusFull)
	svc := NewWaitlistService(store.repos(), 50, zapNop())

	_, err := svc.PeekEarliest(context.Background(), slot.ID)
	require.ErrorIs(t, err, ErrNoWaitlistEntry)
}
