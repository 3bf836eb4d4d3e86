package model

// Table is the physical dining table. CurrentOrderID is non-null only while
// the referenced order is not paid; only the lifecycle engine writes it.
type Table struct {
	DTO
	Number         string `gorm:"unique;size:10" json:"number"`
	Status         string `gorm:"size:20;default:free" json:"status"`
	CurrentOrderID *uint  `json:"currentOrderId"`
}
