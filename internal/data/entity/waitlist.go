package entity

import (
	"github.com/google/uuid"
)

// WaitlistEntry is a user's place in line for a slot that is not open.
// At most one entry exists per (slot, user). Promotion order is createdAt
// ascending with the entry id as a stable tie-break.
type WaitlistEntry struct {
	BaseSimple
	SlotID uuid.UUID `db:"slot_id"`
	UserID string    `db:"user_id"`
}
