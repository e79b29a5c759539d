package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCanceled  BookingStatus = "CANCELED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type BookingSource string

const (
	BookingSourcePublic BookingSource = "PUBLIC"
	BookingSourceAdmin  BookingSource = "ADMIN"
	BookingSourceImport BookingSource = "IMPORT"
)

// Booking is one user's claim on a slot. UserID is an opaque identifier
// supplied by the external identity provider.
type Booking struct {
	ID         uuid.UUID     `db:"id"`
	SlotID     uuid.UUID     `db:"slot_id"`
	ResourceID uuid.UUID     `db:"resource_id"`
	ServiceID  uuid.UUID     `db:"service_id"`
	UserID     string        `db:"user_id"`
	Status     BookingStatus `db:"status"`
	Source     BookingSource `db:"source"`
	CreatedAt  time.Time     `db:"created_at"`
	CanceledAt *time.Time    `db:"canceled_at"`
}

// Active reports whether the booking still holds a place on its slot.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
