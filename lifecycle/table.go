package lifecycle

import (
	"errors"
	"restaurant_manager/constants"
	"restaurant_manager/model"

	"gorm.io/gorm"
)

// Manual table transitions. Guards are state guards only; role checks happen
// before the engine is invoked. A guard violation mutates nothing.

// OccupyTable seats customers: free → occupied.
func (e *Engine) OccupyTable(tableID uint) (*model.Table, error) {
	return e.transitionTable(tableID, constants.TABLE_FREE, constants.TABLE_OCCUPIED)
}

// RequestPayment flags the table for the cashier: eating → paying.
func (e *Engine) RequestPayment(tableID uint) (*model.Table, error) {
	return e.transitionTable(tableID, constants.TABLE_EATING, constants.TABLE_PAYING)
}

// CleanTable returns a bussed table to service: dirty → free.
func (e *Engine) CleanTable(tableID uint) (*model.Table, error) {
	return e.transitionTable(tableID, constants.TABLE_DIRTY, constants.TABLE_FREE)
}

func (e *Engine) transitionTable(tableID uint, from, to string) (*model.Table, error) {
	var table model.Table

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("table not found")
			}
			return err
		}
		if table.Status != from {
			return InvalidState("invalid table state")
		}
		if err := tx.Model(&table).Update("status", to).Error; err != nil {
			return err
		}
		table.Status = to
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}

	e.events.Notify(constants.EVENT_TABLE_UPDATED, &table)
	return &table, nil
}
