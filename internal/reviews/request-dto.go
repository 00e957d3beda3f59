package reviews

type CreateReviewRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
