package request

type AdjustCapacityRequest struct {
	Delta int `json:"delta" validate:"required,ne=0"`
}

type GenerateScheduleRequest struct {
	ResourceID  string `json:"resource_id" validate:"required,uuid4"`
	ServiceID   string `json:"service_id" validate:"required,uuid4"`
	FromDate    string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate      string `json:"to_date" validate:"required,datetime=2006-01-02"`
	Weekdays    []int  `json:"weekdays" validate:"required,min=1,dive,min=0,max=6"`
	DayStart    string `json:"day_start" validate:"required,datetime=15:04"`
	DayEnd      string `json:"day_end" validate:"required,datetime=15:04"`
	SlotMinutes int    `json:"slot_minutes" validate:"required,min=5,max=480"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
}
