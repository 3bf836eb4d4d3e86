package database

import (
	"log"
	"restaurant_manager/constants"
	"restaurant_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	users := []model.User{
		{Username: "superadmin", Password: hashPassword, Role: constants.ROLE_SUPERUSER},
		{Username: "waiter", Password: hashPassword, Role: constants.ROLE_WAITER},
		{Username: "kitchen", Password: hashPassword, Role: constants.ROLE_KITCHEN},
		{Username: "cashier", Password: hashPassword, Role: constants.ROLE_CASHIER},
	}
	for _, user := range users {
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Username, "error:", err)
		}
	}

	settings := model.Settings{
		RestaurantName: "Steakhouse OS",
		PrimaryColor:   "#000000",
		SecondaryColor: "#FFFFFF",
		AccentColor:    "#D4AF37",
		IsActive:       true,
		TicketSlogan:   "Prime Cuts & Drinks",
		TicketFooter:   "Thank you for your visit!",
	}
	var settingsCount int64
	db.Model(&model.Settings{}).Count(&settingsCount)
	if settingsCount == 0 {
		if err := db.Create(&settings).Error; err != nil {
			log.Println("failed to seed settings:", err)
		}
	}

	products := []model.Product{
		{Name: "Ribeye Steak", Slug: "ribeye-steak", Price: 450.00, Category: "Mains", IsActive: true, IsAvailable: true},
		{Name: "Caesar Salad", Slug: "caesar-salad", Price: 120.00, Category: "Starters", IsActive: true, IsAvailable: true},
		{Name: "House Lemonade", Slug: "house-lemonade", Price: 45.00, Category: "Drinks", IsActive: true, IsAvailable: true},
	}
	for _, product := range products {
		if err := db.Where(model.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed product:", product.Name, "error:", err)
		}
	}

	for _, number := range []string{"1", "2", "3", "4"} {
		table := model.Table{Number: number, Status: constants.TABLE_FREE}
		if err := db.Where(model.Table{Number: number}).FirstOrCreate(&table).Error; err != nil {
			log.Println("failed to seed table:", number, "error:", err)
		}
	}
}
