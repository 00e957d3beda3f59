package menu

// menu item create/update payload (admin)
type MenuItemRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	Description     string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	ImageURL        string  `json:"image_url,omitempty"`
	Category        string  `json:"category" validate:"required"`
	Available       *bool   `json:"available,omitempty"`
	PreparationTime int     `json:"preparation_time,omitempty" validate:"omitempty,gte=0"`
}
