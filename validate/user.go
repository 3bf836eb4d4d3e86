package validate

import (
	"fmt"
	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"slices"

	"github.com/gofiber/fiber/v2"
)

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateUserInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid request body", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		if !slices.Contains(constants.AllRoles, input.Role) {
			return utils.ErrorResponse(c, 400, fmt.Sprintf("Unknown role %q", input.Role), nil)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateUserInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid request body", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		if input.Role != "" && !slices.Contains(constants.AllRoles, input.Role) {
			return utils.ErrorResponse(c, 400, fmt.Sprintf("Unknown role %q", input.Role), nil)
		}
		c.Locals("input", input)
		return c.Next()
	}
}
