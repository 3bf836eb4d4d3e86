package model

type User struct {
	DTO
	Username string `gorm:"unique;size:50" json:"username"`
	Password string `json:"-"` // bcrypt hash
	Role     string `gorm:"size:20" json:"role"`
}

type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

type UpdateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
