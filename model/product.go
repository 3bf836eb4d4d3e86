package model

type Product struct {
	DTO
	Name        string  `gorm:"size:100" json:"name"`
	Slug        string  `gorm:"unique;size:120" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`
	Category    string  `gorm:"size:50" json:"category"`
	ImageUrl    string  `gorm:"type:text" json:"imageUrl"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`
	IsAvailable bool    `gorm:"default:true" json:"isAvailable"`
}

type CreateProductInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	ImageUrl    string  `json:"imageUrl"`
}

type UpdateProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    string   `json:"category"`
	ImageUrl    string   `json:"imageUrl"`
}
