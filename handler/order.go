package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)

	order, dropped, err := engine.CreateStaffOrder(input.TableID, input.Items)
	if err != nil {
		return lifecycleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"order":        order,
		"droppedItems": dropped,
	})
}

// PlacePublicOrder is the QR flow: no auth, the table id comes from the
// scanned code. Reuses the table's open order when one exists.
func PlacePublicOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.PublicOrderInput)

	order, dropped, err := engine.PlaceCustomerOrder(input.TableID, input.Items)
	if err != nil {
		return lifecycleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"order":        order,
		"droppedItems": dropped,
	})
}

// GetOrders is the kitchen display view: orders still being worked on,
// oldest first.
func GetOrders(c *fiber.Ctx) error {
	db := database.DB

	var orders []model.Order
	err := db.Preload("Table").Preload("Items").Preload("Items.Product").
		Where("status IN ?", []string{constants.ORDER_PENDING, constants.ORDER_COOKING}).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetActiveOrders(c *fiber.Ctx) error {
	db := database.DB

	query := db.Preload("Table").Preload("Items").Preload("Items.Product").
		Where("status != ?", constants.ORDER_PAID).
		Order("created_at desc")
	query = utils.ApplyPagination(query, utils.Ptr(c.QueryInt("limit")), utils.Ptr(c.QueryInt("page", 1)))

	var orders []model.Order
	err := query.Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetOrderById(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(uint)

	order, err := engine.FullOrder(orderId)
	if err != nil {
		return lifecycleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.UpdateOrderStatusInput)

	order, err := engine.UpdateStatus(orderId, input.Status)
	if err != nil {
		return lifecycleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func PayOrder(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(uint)

	order, err := engine.Settle(orderId)
	if err != nil {
		return lifecycleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
