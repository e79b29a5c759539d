package entity

import "github.com/google/uuid"

// Resource is the thing a slot reserves time on (a room, a staff member).
type Resource struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// Service is what is being delivered during a slot.
type Service struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}
