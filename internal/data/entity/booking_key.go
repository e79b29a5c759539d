package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingKey enforces one active booking per (slot, user). The key exists if
// and only if an active booking exists for the pair; it is created and
// deleted in the same transaction as the booking it guards.
type BookingKey struct {
	Key       string    `db:"key"`
	SlotID    uuid.UUID `db:"slot_id"`
	UserID    string    `db:"user_id"`
	BookingID uuid.UUID `db:"booking_id"`
	CreatedAt time.Time `db:"created_at"`
}

// BookingKeyFor builds the composite key used as primary key.
func BookingKeyFor(slotID uuid.UUID, userID string) string {
	return fmt.Sprintf("%s_%s", slotID.String(), userID)
}
