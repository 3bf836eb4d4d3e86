package lifecycle

import (
	"errors"
	"restaurant_manager/constants"
	"restaurant_manager/model"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine is the only writer allowed to touch an order together with its
// table. Every operation runs one transaction; the table row is locked first
// so concurrent placements against the same table serialize, and nothing is
// broadcast until after commit.
type Engine struct {
	db      *gorm.DB
	catalog Catalog
	events  Broadcaster
}

func NewEngine(db *gorm.DB, catalog Catalog, events Broadcaster) *Engine {
	return &Engine{db: db, catalog: catalog, events: events}
}

// lockForUpdate takes a row lock on postgres. SQLite (tests) has no
// FOR UPDATE and is single-writer anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("concurrent write detected, retry the operation", err)
	}
	return err
}

// FullOrder loads the resolved aggregate: table, items and product names.
// A dangling table reference (table deleted administratively) reads as no
// table.
func (e *Engine) FullOrder(orderID uint) (*model.Order, error) {
	var order model.Order
	err := e.db.
		Preload("Table").
		Preload("Items").
		Preload("Items.Product").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("order not found")
		}
		return nil, err
	}
	return &order, nil
}

// CreateStaffOrder places a dine-in order on behalf of a waiter. The order,
// its items and the table move in one transaction; on any failure nothing is
// observable.
func (e *Engine) CreateStaffOrder(tableID uint, requested []model.RequestedItem) (*model.Order, int, error) {
	var orderID uint
	var dropped int

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("table not found")
			}
			return err
		}

		items, total, droppedCount, err := resolveItems(e.catalog, requested)
		if err != nil {
			return err
		}
		dropped = droppedCount

		order := model.Order{
			PublicCode: newPublicCode(),
			TableID:    &table.ID,
			OrderType:  constants.ORDER_TYPE_DINE_IN,
			Status:     constants.ORDER_PENDING,
			Total:      total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := createItems(tx, order.ID, items); err != nil {
			return err
		}

		table.Status = constants.TABLE_WAITING_FOOD
		table.CurrentOrderID = &order.ID
		if err := tx.Save(&table).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, 0, translateErr(err)
	}

	full, err := e.FullOrder(orderID)
	if err != nil {
		return nil, dropped, err
	}
	e.events.Notify(constants.EVENT_NEW_ORDER, full)
	if full.Table != nil {
		e.events.Notify(constants.EVENT_TABLE_UPDATED, full.Table)
	}
	return full, dropped, nil
}

// PlaceCustomerOrder is the public QR flow. If the table already points at an
// active order the new items amend it; an order the kitchen finished (served
// or ready) is reopened to cooking; a stale pointer at an already paid order
// is treated as absent and a fresh order starts. The table pointer must
// always resolve to a usable order after this call.
func (e *Engine) PlaceCustomerOrder(tableID uint, requested []model.RequestedItem) (*model.Order, int, error) {
	var orderID uint
	var dropped int
	isNew := false

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("table not found")
			}
			return err
		}

		var order *model.Order
		if table.CurrentOrderID != nil {
			var existing model.Order
			err := lockForUpdate(tx).First(&existing, *table.CurrentOrderID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				// dangling pointer, start fresh
			case err != nil:
				return err
			case existing.Status == constants.ORDER_PAID:
				// table was not released properly, start fresh
			default:
				order = &existing
			}
		}

		if order == nil {
			isNew = true
			order = &model.Order{
				PublicCode: newPublicCode(),
				TableID:    &table.ID,
				OrderType:  constants.ORDER_TYPE_DINE_IN,
				Status:     constants.ORDER_PENDING,
			}
			if err := tx.Create(order).Error; err != nil {
				return err
			}
		} else if order.Status == constants.ORDER_SERVED || order.Status == constants.ORDER_READY {
			// new items arrived for an order the kitchen thought was done
			order.Status = constants.ORDER_COOKING
		}

		items, itemsTotal, droppedCount, err := resolveItems(e.catalog, requested)
		if err != nil {
			return err
		}
		dropped = droppedCount

		if err := createItems(tx, order.ID, items); err != nil {
			return err
		}
		order.Total += itemsTotal
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		table.Status = constants.TABLE_WAITING_FOOD
		if isNew {
			table.CurrentOrderID = &order.ID
		}
		if err := tx.Save(&table).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, 0, translateErr(err)
	}

	full, err := e.FullOrder(orderID)
	if err != nil {
		return nil, dropped, err
	}
	if isNew {
		e.events.Notify(constants.EVENT_NEW_ORDER, full)
	} else {
		e.events.Notify(constants.EVENT_ORDER_UPDATED, full)
	}
	if full.Table != nil {
		e.events.Notify(constants.EVENT_TABLE_UPDATED, full.Table)
	}
	return full, dropped, nil
}

// CreateTakeoutOrder places an order with no table. The customer name is the
// pickup handle and is required.
func (e *Engine) CreateTakeoutOrder(customerName string, requested []model.RequestedItem) (*model.Order, int, error) {
	if len(requested) == 0 {
		return nil, 0, Validation("order must have at least one item")
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, 0, Validation("customer name is required for takeout orders")
	}

	var orderID uint
	var dropped int

	err := e.db.Transaction(func(tx *gorm.DB) error {
		items, total, droppedCount, err := resolveItems(e.catalog, requested)
		if err != nil {
			return err
		}
		dropped = droppedCount

		order := model.Order{
			PublicCode:   newPublicCode(),
			OrderType:    constants.ORDER_TYPE_TAKEOUT,
			CustomerName: customerName,
			Status:       constants.ORDER_PENDING,
			Total:        total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := createItems(tx, order.ID, items); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, 0, translateErr(err)
	}

	full, err := e.FullOrder(orderID)
	if err != nil {
		return nil, dropped, err
	}
	e.events.Notify(constants.EVENT_NEW_ORDER, full)
	return full, dropped, nil
}

// UpdateStatus applies a forward status transition. Reaching served on a
// dine-in order cascades the table to eating, and reaching paid releases the
// table, inside the same transaction. Transitioning into the current status
// succeeds without side effects.
func (e *Engine) UpdateStatus(orderID uint, target string) (*model.Order, error) {
	if !KnownStatus(target) {
		return nil, Validation("unknown order status")
	}

	noop := false
	tableChanged := false
	var changedTable model.Table

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("order not found")
			}
			return err
		}

		if order.Status == target {
			noop = true
			return nil
		}
		if !CanTransition(order.Status, target) {
			return InvalidState("invalid status transition")
		}

		if err := tx.Model(&order).Update("status", target).Error; err != nil {
			return err
		}

		if order.TableID == nil {
			return nil
		}
		var table model.Table
		err := lockForUpdate(tx).First(&table, *order.TableID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		switch target {
		case constants.ORDER_SERVED:
			table.Status = constants.TABLE_EATING
		case constants.ORDER_PAID:
			// the pointer must never reference a paid order
			if table.CurrentOrderID == nil || *table.CurrentOrderID != order.ID {
				return nil
			}
			table.Status = constants.TABLE_DIRTY
			table.CurrentOrderID = nil
		default:
			return nil
		}
		if err := tx.Save(&table).Error; err != nil {
			return err
		}
		changedTable = table
		tableChanged = true
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}

	full, err := e.FullOrder(orderID)
	if err != nil {
		return nil, err
	}
	if noop {
		return full, nil
	}
	e.events.Notify(constants.EVENT_ORDER_UPDATED, full)
	if tableChanged {
		e.events.Notify(constants.EVENT_TABLE_UPDATED, &changedTable)
	}
	return full, nil
}

// Settle marks the order paid regardless of its current status and releases
// the table (dirty, pointer cleared). Calling it again is a no-op: status
// stays paid, the table stays released, and nothing is re-broadcast.
func (e *Engine) Settle(orderID uint) (*model.Order, error) {
	alreadyPaid := false
	tableChanged := false
	var changedTable model.Table

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("order not found")
			}
			return err
		}

		alreadyPaid = order.Status == constants.ORDER_PAID
		if !alreadyPaid {
			if err := tx.Model(&order).Update("status", constants.ORDER_PAID).Error; err != nil {
				return err
			}
		}

		if order.TableID == nil {
			return nil
		}
		var table model.Table
		err := lockForUpdate(tx).First(&table, *order.TableID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if table.CurrentOrderID == nil || *table.CurrentOrderID != order.ID {
			return nil
		}

		table.Status = constants.TABLE_DIRTY
		table.CurrentOrderID = nil
		if err := tx.Save(&table).Error; err != nil {
			return err
		}
		changedTable = table
		tableChanged = true
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}

	full, err := e.FullOrder(orderID)
	if err != nil {
		return nil, err
	}
	if alreadyPaid && !tableChanged {
		return full, nil
	}
	e.events.Notify(constants.EVENT_ORDER_PAID, PaidEvent{OrderID: full.ID})
	if tableChanged {
		e.events.Notify(constants.EVENT_TABLE_UPDATED, &changedTable)
	}
	return full, nil
}

func createItems(tx *gorm.DB, orderID uint, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return tx.Create(&items).Error
}
