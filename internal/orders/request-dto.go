package orders

type CreateOrderRequest struct {
	OrderType           string `json:"order_type,omitempty"`
	DeliveryAddress     string `json:"delivery_address,omitempty" validate:"omitempty,max=255"`
	PaymentCardID       string `json:"payment_card_id,omitempty" validate:"omitempty,uuid"`
	SpecialInstructions string `json:"special_instructions,omitempty" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
