package response

import (
	"time"

	"slot-booking/internal/data/entity"
)

type ReserveResponse struct {
	BookingID string               `json:"booking_id"`
	SlotID    string               `json:"slot_id"`
	Status    entity.BookingStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

type BookingResponse struct {
	ID           string               `json:"id"`
	SlotID       string               `json:"slot_id"`
	UserID       string               `json:"user_id"`
	Status       entity.BookingStatus `json:"status"`
	Source       entity.BookingSource `json:"source"`
	StartAt      *time.Time           `json:"start_at,omitempty"`
	EndAt        *time.Time           `json:"end_at,omitempty"`
	ServiceName  string               `json:"service_name,omitempty"`
	ResourceName string               `json:"resource_name,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	CanceledAt   *time.Time           `json:"canceled_at,omitempty"`
}

type PromoteResponse struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	SlotID    string `json:"slot_id"`
}

type WaitlistEntryResponse struct {
	ID        string    `json:"id"`
	SlotID    string    `json:"slot_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type WaitlistJoinResponse struct {
	SlotID  string `json:"slot_id"`
	UserID  string `json:"user_id"`
	Created bool   `json:"created"`
}
