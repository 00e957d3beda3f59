package cart

type AddItemRequest struct {
	MenuItemID     string `json:"menu_item_id" validate:"required,uuid"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	Customizations string `json:"customizations,omitempty" validate:"omitempty,max=500"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}
