package request

type ReserveRequest struct {
	SlotID string `json:"slot_id" validate:"required,uuid4"`
}

type CancelBookingRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED NO_SHOW COMPLETED"`
}

type JoinWaitlistRequest struct {
	SlotID string `json:"slot_id" validate:"required,uuid4"`
}
