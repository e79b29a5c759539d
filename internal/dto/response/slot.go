package response

import (
	"time"

	"slot-booking/internal/data/entity"
)

type SlotResponse struct {
	ID           string            `json:"id"`
	ResourceID   string            `json:"resource_id"`
	ServiceID    string            `json:"service_id"`
	ResourceName string            `json:"resource_name,omitempty"`
	ServiceName  string            `json:"service_name,omitempty"`
	StartAt      time.Time         `json:"start_at"`
	EndAt        time.Time         `json:"end_at"`
	Capacity     int               `json:"capacity"`
	Status       entity.SlotStatus `json:"status"`
}

type SlotStateResponse struct {
	SlotID   string            `json:"slot_id"`
	Capacity int               `json:"capacity"`
	Status   entity.SlotStatus `json:"status"`
}

type GenerateScheduleResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

func SlotToResponse(slot *entity.Slot, resourceName, serviceName string) SlotResponse {
	return SlotResponse{
		ID:           slot.ID.String(),
		ResourceID:   slot.ResourceID.String(),
		ServiceID:    slot.ServiceID.String(),
		ResourceName: resourceName,
		ServiceName:  serviceName,
		StartAt:      slot.StartAt,
		EndAt:        slot.EndAt,
		Capacity:     slot.Capacity,
		Status:       slot.Status,
	}
}
