package helper

import (
	"restaurant_manager/model"
	"strconv"

	"gorm.io/gorm"
)

// NextTableNumber finds the highest numeric table number and returns the
// next one. Numbers are display strings, so the max is computed in Go rather
// than sorted in SQL ("10" < "2" as strings).
func NextTableNumber(db *gorm.DB) (string, error) {
	var numbers []string
	if err := db.Model(&model.Table{}).Pluck("number", &numbers).Error; err != nil {
		return "", err
	}

	max := 0
	for _, number := range numbers {
		n, err := strconv.Atoi(number)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1), nil
}
