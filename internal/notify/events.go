package notify

import (
	"github.com/google/uuid"
)

const TypeNotifyPush = "notify:push"

type Kind string

const (
	KindAdmin Kind = "admin"
	KindUser  Kind = "user"
)

// Event is emitted by the booking coordinator after a transaction commits.
// Delivery is best-effort; nothing downstream of an Event may affect the
// outcome of the operation that produced it.
type Event struct {
	Kind      Kind      `json:"kind"`
	SlotID    uuid.UUID `json:"slot_id"`
	BookingID uuid.UUID `json:"booking_id"`
	UserID    string    `json:"user_id"`
	Summary   string    `json:"summary"`
}
