package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"restaurant_manager/config"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetTables(c *fiber.Ctx) error {
	db := database.DB

	var tables []model.Table
	if err := db.Order("id asc").Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}

func CreateTable(c *fiber.Ctx) error {
	db := database.DB

	number, err := helper.NextTableNumber(db)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	table := model.Table{Number: number, Status: constants.TABLE_FREE}
	if err := db.Create(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	EventBroadcaster().Notify(constants.EVENT_TABLE_UPDATED, table)
	return utils.SuccessResponse(c, fiber.StatusCreated, table)
}

func DeleteTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(uint)
	db := database.DB

	var table model.Table
	if err := db.First(&table, tableId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Table not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if table.Status != constants.TABLE_FREE {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Only free tables can be deleted", nil)
	}

	if err := db.Delete(&table).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	EventBroadcaster().Notify(constants.EVENT_TABLE_UPDATED, fiber.Map{"deleted": table.ID})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": table.ID})
}

func OccupyTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(uint)

	table, err := engine.OccupyTable(tableId)
	if err != nil {
		return lifecycleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

func RequestPayment(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(uint)

	table, err := engine.RequestPayment(tableId)
	if err != nil {
		return lifecycleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

func CleanTable(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(uint)

	table, err := engine.CleanTable(tableId)
	if err != nil {
		return lifecycleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, table)
}

// TableQR returns the table's QR code as a data URL. The code points guests
// at the public ordering page for this table.
func TableQR(c *fiber.Ctx) error {
	tableId := c.Locals("inputId").(uint)
	db := database.DB

	var table model.Table
	if err := db.First(&table, tableId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Table not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	baseUrl := config.Config("PUBLIC_BASE_URL")
	if baseUrl == "" {
		baseUrl = "http://localhost:5173"
	}
	target := fmt.Sprintf("%s/order?table=%d", baseUrl, table.ID)

	png, err := utils.GenerateQRCode(target, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"table": table.Number,
		"url":   target,
		"qr":    "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}
