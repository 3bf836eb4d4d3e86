package model

// Settings is a single-row table holding branding and receipt texts.
type Settings struct {
	DTO
	RestaurantName string `gorm:"size:100;default:Steakhouse OS" json:"restaurantName"`
	LogoUrl        string `gorm:"type:text" json:"logoUrl"`
	PrimaryColor   string `gorm:"size:10;default:#000000" json:"primaryColor"`
	SecondaryColor string `gorm:"size:10;default:#FFFFFF" json:"secondaryColor"`
	AccentColor    string `gorm:"size:10;default:#D4AF37" json:"accentColor"`
	IsActive       bool   `gorm:"default:true" json:"isActive"`
	TicketSlogan   string `gorm:"size:100" json:"ticketSlogan"`
	TicketAddress  string `gorm:"size:200" json:"ticketAddress"`
	TicketPhone    string `gorm:"size:50" json:"ticketPhone"`
	TicketFooter   string `gorm:"size:100" json:"ticketFooter"`
	TicketFooter2  string `gorm:"size:100" json:"ticketFooter2"`
}

type UpdateSettingsInput struct {
	RestaurantName string `json:"restaurantName" validate:"omitempty,max=100"`
	LogoUrl        string `json:"logoUrl"`
	PrimaryColor   string `json:"primaryColor" validate:"omitempty,max=10"`
	SecondaryColor string `json:"secondaryColor" validate:"omitempty,max=10"`
	AccentColor    string `json:"accentColor" validate:"omitempty,max=10"`
	TicketSlogan   string `json:"ticketSlogan" validate:"omitempty,max=100"`
	TicketAddress  string `json:"ticketAddress" validate:"omitempty,max=200"`
	TicketPhone    string `json:"ticketPhone" validate:"omitempty,max=50"`
	TicketFooter   string `json:"ticketFooter" validate:"omitempty,max=100"`
	TicketFooter2  string `json:"ticketFooter2" validate:"omitempty,max=100"`
}
