package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

func GetStats(c *fiber.Ctx) error {
	db := database.DB

	type Stats struct {
		TodaySales    float64 `json:"todaySales"`
		TodayOrders   int64   `json:"todayOrders"`
		ActiveOrders  int64   `json:"activeOrders"`
		AverageTicket float64 `json:"averageTicket"`
		SalesGrowth   float64 `json:"salesGrowth"`  // %
		OrdersGrowth  float64 `json:"ordersGrowth"` // %
	}

	var stats Stats
	today := time.Now().In(time.Local)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())

	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE status = ?
          AND created_at BETWEEN ? AND ?
    `, constants.ORDER_PAID, todayStart, todayEnd).Scan(&stats.TodaySales)

	db.Model(&model.Order{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", constants.ORDER_PAID, todayStart, todayEnd).
		Count(&stats.TodayOrders)

	db.Model(&model.Order{}).
		Where("status != ?", constants.ORDER_PAID).
		Count(&stats.ActiveOrders)

	if stats.TodayOrders > 0 {
		stats.AverageTicket = stats.TodaySales / float64(stats.TodayOrders)
	}

	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayEnd.AddDate(0, 0, -1)

	var yesterdaySales float64
	var yesterdayOrders int64

	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE status = ?
          AND created_at BETWEEN ? AND ?
    `, constants.ORDER_PAID, yesterdayStart, yesterdayEnd).Scan(&yesterdaySales)

	db.Model(&model.Order{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", constants.ORDER_PAID, yesterdayStart, yesterdayEnd).
		Count(&yesterdayOrders)

	stats.SalesGrowth = utils.CalculateGrowth(stats.TodaySales, yesterdaySales)
	stats.OrdersGrowth = utils.CalculateGrowth(float64(stats.TodayOrders), float64(yesterdayOrders))

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

func GetTopProducts(c *fiber.Ctx) error {
	db := database.DB

	type TopProduct struct {
		ProductID uint    `json:"productId"`
		Name      string  `json:"name"`
		Sold      int64   `json:"sold"`
		Revenue   float64 `json:"revenue"`
	}

	var top []TopProduct
	err := db.Raw(`
        SELECT oi.product_id,
               p.name,
               SUM(oi.quantity) AS sold,
               SUM(oi.quantity * oi.price_at_moment) AS revenue
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        JOIN products p ON p.id = oi.product_id
        WHERE o.status = ?
        GROUP BY oi.product_id, p.name
        ORDER BY sold DESC
        LIMIT 5
    `, constants.ORDER_PAID).Scan(&top).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, top)
}
