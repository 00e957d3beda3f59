package cards

type AddCardRequest struct {
	CardNumber  string `json:"card_number" validate:"required,min=13,max=19,numeric"`
	HolderName  string `json:"holder_name" validate:"required,min=2,max=100"`
	ExpiryMonth int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" validate:"required,min=2000"`
	SetDefault  bool   `json:"set_default,omitempty"`
}
