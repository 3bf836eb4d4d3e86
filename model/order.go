package model

// Order plus its line items form one aggregate: they are created and mutated
// together inside a single transaction. Total always equals the sum of
// quantity × price_at_moment over the items and is never taken from clients.
type Order struct {
	DTO
	PublicCode   string      `gorm:"unique;size:20" json:"publicCode"`
	TableID      *uint       `json:"tableId"` // null for takeout/pickup
	Table        *Table      `json:"table,omitempty"`
	OrderType    string      `gorm:"size:10;default:dine-in" json:"orderType"`
	CustomerName string      `gorm:"size:100" json:"customerName,omitempty"`
	Status       string      `gorm:"size:10;default:pending" json:"status"`
	Total        float64     `gorm:"type:decimal(10,2)" json:"total"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// RequestedItem is what clients send; price is always resolved server-side.
type RequestedItem struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	TableID uint            `json:"tableId" validate:"required"`
	Items   []RequestedItem `json:"items" validate:"required,dive"`
}

type PublicOrderInput struct {
	TableID uint            `json:"tableId" validate:"required"`
	Items   []RequestedItem `json:"items" validate:"dive"`
}

type TakeoutOrderInput struct {
	CustomerName string          `json:"customerName"`
	Items        []RequestedItem `json:"items" validate:"dive"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending cooking ready served paid"`
}
