package handler

import (
	"context"
	"errors"
	"fmt"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetSettings(c *fiber.Ctx) error {
	db := database.DB

	var settings model.Settings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.Settings{RestaurantName: "Steakhouse OS", IsActive: true}
		if err := db.Create(&settings).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	} else if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, settings)
}

func UpdateSettings(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateSettingsInput)
	db := database.DB

	var settings model.Settings
	if err := db.First(&settings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	err := copier.CopyWithOption(&settings, &input, copier.Option{IgnoreEmpty: true})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Save(&settings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, settings)
}

// UploadLogo pushes the restaurant logo to Cloudinary and stores the URL.
func UploadLogo(c *fiber.Ctx) error {
	file, err := c.FormFile("logo")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Logo file is required", err)
	}

	reader, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer reader.Close()

	cld := helper.InitCloudinary()
	result, err := cld.Upload.Upload(context.Background(), reader, uploader.UploadParams{
		Folder:       "restaurant/branding",
		PublicID:     fmt.Sprintf("logo_%d", time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	db := database.DB
	var settings model.Settings
	if err := db.First(&settings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	settings.LogoUrl = result.SecureURL
	if err := db.Save(&settings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, settings)
}

// ResetData wipes operational data (orders, items, products, tables) and
// restores seed defaults. Users and settings survive.
func ResetData(c *fiber.Ctx) error {
	db := database.DB

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Table{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	database.SeedData(db)

	EventBroadcaster().Notify(constants.EVENT_TABLE_UPDATED, fiber.Map{"reset": true})
	EventBroadcaster().Notify(constants.EVENT_PRODUCT_UPDATED, fiber.Map{"reset": true})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"reset": true})
}
