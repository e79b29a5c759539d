package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusOpen   SlotStatus = "OPEN"
	SlotStatusClosed SlotStatus = "CLOSED"
	SlotStatusFull   SlotStatus = "FULL"
)

// Slot is a bookable time window. Capacity is the number of remaining
// reservable places; capacity 0 implies status FULL or CLOSED.
type Slot struct {
	BaseNoDelete
	ResourceID uuid.UUID  `db:"resource_id"`
	ServiceID  uuid.UUID  `db:"service_id"`
	StartAt    time.Time  `db:"start_at"`
	EndAt      time.Time  `db:"end_at"`
	Capacity   int        `db:"capacity"`
	Status     SlotStatus `db:"status"`
}

// Reservable reports whether a new reservation can be taken right now.
func (s *Slot) Reservable() bool {
	return s.Status == SlotStatusOpen && s.Capacity > 0
}
