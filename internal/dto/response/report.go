package response

import "time"

type UtilizationResponse struct {
	SlotCount      int               `json:"slot_count"`
	TotalCapacity  int               `json:"total_capacity"`
	ActiveBookings int               `json:"active_bookings"`
	Utilization    float64           `json:"utilization"`
	TopSlots       []SlotUtilization `json:"top_slots"`
}

type SlotUtilization struct {
	SlotID       string    `json:"slot_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	ResourceName string    `json:"resource_name,omitempty"`
	ServiceName  string    `json:"service_name,omitempty"`
	Capacity     int       `json:"capacity"`
	Active       int       `json:"active"`
	Status       string    `json:"status"`
}

type NotifyLogResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	UserID    string    `json:"user_id"`
	SlotID    string    `json:"slot_id"`
	BookingID string    `json:"booking_id"`
	OK        bool      `json:"ok"`
	Skipped   bool      `json:"skipped"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
