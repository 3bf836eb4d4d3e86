package model

// OrderItem records PriceAtMoment as captured from the catalog when the item
// was added. It is a historical fact and never re-derived from the product.
type OrderItem struct {
	DTO
	OrderID       uint    `json:"orderId"`
	ProductID     uint    `json:"productId"`
	Product       Product `json:"product"`
	Quantity      int     `gorm:"default:1" json:"quantity"`
	PriceAtMoment float64 `gorm:"type:decimal(10,2)" json:"priceAtMoment"`
}
