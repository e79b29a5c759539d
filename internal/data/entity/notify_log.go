package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotifyKind string

const (
	NotifyKindAdmin NotifyKind = "admin"
	NotifyKindUser  NotifyKind = "user"
)

// LineBinding links an opaque user id to a LINE recipient id. Users without
// a binding are skipped by the user-notification path.
type LineBinding struct {
	UserID     string `db:"user_id"`
	LineUserID string `db:"line_user_id"`
}

// NotifyLog records one delivery attempt of the notifier worker.
type NotifyLog struct {
	ID        uuid.UUID  `db:"id"`
	Kind      NotifyKind `db:"kind"`
	UserID    string     `db:"user_id"`
	SlotID    uuid.UUID  `db:"slot_id"`
	BookingID uuid.UUID  `db:"booking_id"`
	OK        bool       `db:"ok"`
	Skipped   bool       `db:"skipped"`
	Detail    string     `db:"detail"`
	CreatedAt time.Time  `db:"created_at"`
}
