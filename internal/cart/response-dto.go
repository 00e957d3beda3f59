package cart

// CartResponse is the cart plus derived totals.
type CartResponse struct {
	Cart      *Cart   `json:"cart"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

func toCartResponse(c *Cart) *CartResponse {
	return &CartResponse{
		Cart:      c,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
