package handler

import (
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateTakeoutOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.TakeoutOrderInput)

	order, dropped, err := engine.CreateTakeoutOrder(input.CustomerName, input.Items)
	if err != nil {
		return lifecycleError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"order":        order,
		"droppedItems": dropped,
	})
}
