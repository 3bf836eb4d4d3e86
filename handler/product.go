package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetProducts(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.Product{}).Order("category asc, name asc")
	if c.Query("all") != "true" {
		query = query.Where("is_active = true")
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, products)
}

// GetMenu is the public menu behind the QR flow: active, available items only.
func GetMenu(c *fiber.Ctx) error {
	db := database.DB

	var products []model.Product
	err := db.Where("is_active = true AND is_available = true").
		Order("category asc, name asc").
		Find(&products).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, products)
}

func CreateProduct(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateProductInput)
	db := database.DB

	var product model.Product
	if err := copier.Copy(&product, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	product.Slug = helper.GenerateUniqueProductSlug(db, input.Name)
	product.IsActive = true
	product.IsAvailable = true

	if err := db.Create(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	EventBroadcaster().Notify(constants.EVENT_PRODUCT_UPDATED, product)
	return utils.SuccessResponse(c, fiber.StatusCreated, product)
}

func UpdateProduct(c *fiber.Ctx) error {
	productId := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.UpdateProductInput)
	db := database.DB

	var product model.Product
	if err := db.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	nameChanged := input.Name != "" && input.Name != product.Name

	err := copier.CopyWithOption(&product, &input, copier.Option{IgnoreEmpty: true})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if nameChanged {
		product.Slug = helper.GenerateUniqueProductSlug(db, product.Name)
	}

	if err := db.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	EventBroadcaster().Notify(constants.EVENT_PRODUCT_UPDATED, product)
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

// ToggleAvailability flips the 86 switch. Unavailable products stay on the
// admin list but disappear from the public menu and are dropped from orders.
func ToggleAvailability(c *fiber.Ctx) error {
	productId := c.Locals("inputId").(uint)
	db := database.DB

	var product model.Product
	if err := db.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	product.IsAvailable = !product.IsAvailable
	if err := db.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	EventBroadcaster().Notify(constants.EVENT_PRODUCT_UPDATED, product)
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

// DeleteProduct deactivates instead of deleting so historical order items
// keep their product reference.
func DeleteProduct(c *fiber.Ctx) error {
	productId := c.Locals("inputId").(uint)
	db := database.DB

	var product model.Product
	if err := db.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	product.IsActive = false
	if err := db.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	EventBroadcaster().Notify(constants.EVENT_PRODUCT_UPDATED, product)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": product.ID})
}

func DeleteProducts(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)
	db := database.DB

	err := db.Model(&model.Product{}).
		Where("id IN ?", input.IDs).
		Update("is_active", false).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	EventBroadcaster().Notify(constants.EVENT_PRODUCT_UPDATED, fiber.Map{"deleted": input.IDs})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": input.IDs})
}

// GenerateSignature signs direct-to-Cloudinary uploads for product images.
func GenerateSignature(c *fiber.Ctx) error {
	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // Parse but don't sign
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid params", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = timestampStr

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Raw values, no URL encoding, per Cloudinary's signing rules
	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}
