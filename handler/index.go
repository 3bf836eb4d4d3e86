package handler

import (
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/lifecycle"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

var engine *lifecycle.Engine

// SetupEngine wires the lifecycle engine to the database and the websocket
// broadcaster. Must run after database.ConnectDB.
func SetupEngine() {
	engine = lifecycle.NewEngine(
		database.DB,
		lifecycle.NewCatalog(database.DB),
		EventBroadcaster(),
	)
}

func lifecycleError(c *fiber.Ctx, err error) error {
	switch lifecycle.KindOf(err) {
	case lifecycle.KindNotFound:
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error(), err)
	case lifecycle.KindValidation:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	case lifecycle.KindInvalidState:
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), err)
	case lifecycle.KindConflict:
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
}
