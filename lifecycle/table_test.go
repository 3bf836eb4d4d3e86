package lifecycle

import (
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setTableStatus(t *testing.T, db *gorm.DB, id uint, status string) {
	t.Helper()
	require.NoError(t, db.Model(&model.Table{}).Where("id = ?", id).Update("status", status).Error)
}

func TestOccupyTable(t *testing.T) {
	engine, rec, db := newTestEngine(t)
	table := seedTable(t, db, "1")

	occupied, err := engine.OccupyTable(table.ID)
	require.NoError(t, err)
	require.Equal(t, constants.TABLE_OCCUPIED, occupied.Status)
	require.Equal(t, []string{constants.EVENT_TABLE_UPDATED}, rec.topics())

	// guard: only a free table can be occupied
	_, err = engine.OccupyTable(table.ID)
	require.Equal(t, KindInvalidState, KindOf(err))
	require.Equal(t, constants.TABLE_OCCUPIED, reloadTable(t, db, table.ID).Status)
}

func TestRequestPaymentRequiresEating(t *testing.T) {
	engine, _, db := newTestEngine(t)
	table := seedTable(t, db, "2")

	_, err := engine.RequestPayment(table.ID)
	require.Equal(t, KindInvalidState, KindOf(err))

	setTableStatus(t, db, table.ID, constants.TABLE_EATING)
	paying, err := engine.RequestPayment(table.ID)
	require.NoError(t, err)
	require.Equal(t, constants.TABLE_PAYING, paying.Status)
}

func TestCleanTableRequiresDirty(t *testing.T) {
	engine, _, db := newTestEngine(t)
	table := seedTable(t, db, "3")

	_, err := engine.CleanTable(table.ID)
	require.Equal(t, KindInvalidState, KindOf(err))

	setTableStatus(t, db, table.ID, constants.TABLE_DIRTY)
	cleaned, err := engine.CleanTable(table.ID)
	require.NoError(t, err)
	require.Equal(t, constants.TABLE_FREE, cleaned.Status)
}

func TestTableTransitionNotFound(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	_, err := engine.OccupyTable(99)
	require.Equal(t, KindNotFound, KindOf(err))
}
