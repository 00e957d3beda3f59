package users

// profile update payload
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=100"`
	LastName    string `json:"last_name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
}

// notification preference toggles; nil fields are left unchanged
type UpdatePreferencesRequest struct {
	NotifyOrders       *bool `json:"notify_orders,omitempty"`
	NotifyReservations *bool `json:"notify_reservations,omitempty"`
	NotifyPromotions   *bool `json:"notify_promotions,omitempty"`
}

// admin role change payload
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
