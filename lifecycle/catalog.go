package lifecycle

import (
	"errors"
	"restaurant_manager/model"

	"gorm.io/gorm"
)

// ProductSnapshot is the catalog's view of a product at placement time.
type ProductSnapshot struct {
	ID        uint
	Name      string
	Price     float64
	Active    bool
	Available bool
}

// Catalog resolves product identity, price and availability. Lookup returns
// (nil, nil) for a missing product; the engine drops such items silently.
type Catalog interface {
	Lookup(productID uint) (*ProductSnapshot, error)
}

type gormCatalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) Catalog {
	return &gormCatalog{db: db}
}

func (c *gormCatalog) Lookup(productID uint) (*ProductSnapshot, error) {
	var product model.Product
	if err := c.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ProductSnapshot{
		ID:        product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Active:    product.IsActive,
		Available: product.IsAvailable,
	}, nil
}
