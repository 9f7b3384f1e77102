package dto

type AddItemInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Category string `json:"category" validate:"required,max=120"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	MinStock int    `json:"minStock" validate:"gte=0"`
	Unit     string `json:"unit" validate:"required,max=40"`
	AddedBy  string `json:"-"`
}

type UpdateItemInput struct {
	Name     string `json:"name" validate:"omitempty,max=120"`
	Category string `json:"category" validate:"omitempty,max=120"`
	Quantity *int   `json:"quantity"`
	MinStock *int   `json:"minStock"`
	Unit     string `json:"unit" validate:"omitempty,max=40"`
	Reason   string `json:"reason" validate:"required"`
}

const (
	AdjustAdd    = "add"
	AdjustRemove = "remove"
)

type AdjustStockInput struct {
	ID        int64  `json:"-"`
	Action    string `json:"action" validate:"required,oneof=add remove"`
	Amount    int    `json:"amount" validate:"gt=0"`
	Reason    string `json:"reason" validate:"required"`
	UpdatedBy string `json:"-"`
}

type ReplaceInventoryInput struct {
	Items []ItemInput `json:"items" validate:"dive"`
}

type ItemInput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"required,max=120"`
	Category string `json:"category" validate:"required,max=120"`
	Quantity int    `json:"quantity"`
	MinStock int    `json:"minStock"`
	Unit     string `json:"unit" validate:"required,max=40"`
}
