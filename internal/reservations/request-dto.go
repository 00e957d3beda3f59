package reservations

import "time"

type ReservationRequest struct {
	DateTime        time.Time `json:"date_time" validate:"required"`
	GuestCount      int       `json:"guest_count" validate:"required,gt=0"`
	TableNumbers    []int     `json:"table_numbers"`
	SpecialRequests string    `json:"special_requests,omitempty" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
