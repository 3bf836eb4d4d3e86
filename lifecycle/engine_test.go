package lifecycle

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordedEvent struct {
	topic   string
	payload any
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) Notify(topic string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{topic: topic, payload: payload})
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	topics := make([]string, 0, len(r.events))
	for _, e := range r.events {
		topics = append(topics, e.topic)
	}
	return topics
}

var testDBSeq int64

func newTestEngine(t *testing.T) (*Engine, *recorder, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:lifecycle_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Table{}, &model.Order{}, &model.OrderItem{}))

	rec := &recorder{}
	return NewEngine(db, NewCatalog(db), rec), rec, db
}

// newFileTestEngine opens a file-backed database so separate connections see
// the same data and writes contend for real. BEGIN IMMEDIATE plus the busy
// timeout makes concurrent transactions queue instead of failing.
func newFileTestEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "lifecycle.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Table{}, &model.Order{}, &model.OrderItem{}))

	return NewEngine(db, NewCatalog(db), &recorder{}), db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, active, available bool) uint {
	t.Helper()
	product := model.Product{Name: name, Slug: name, Price: price, Category: "Mains", IsActive: active, IsAvailable: available}
	require.NoError(t, db.Create(&product).Error)
	return product.ID
}

func seedTable(t *testing.T, db *gorm.DB, number string) *model.Table {
	t.Helper()
	table := model.Table{Number: number, Status: constants.TABLE_FREE}
	require.NoError(t, db.Create(&table).Error)
	return &table
}

func reloadTable(t *testing.T, db *gorm.DB, id uint) *model.Table {
	t.Helper()
	var table model.Table
	require.NoError(t, db.First(&table, id).Error)
	return &table
}

func itemsTotal(t *testing.T, db *gorm.DB, orderID uint) float64 {
	t.Helper()
	var items []model.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&items).Error)
	var sum float64
	for _, item := range items {
		sum += item.PriceAtMoment * float64(item.Quantity)
	}
	return sum
}

func TestConcurrentPlacementsShareOneOrder(t *testing.T) {
	engine, db := newFileTestEngine(t)
	ribeye := seedProduct(t, db, "ribeye", 450.00, true, true)
	table := seedTable(t, db, "1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: ribeye, Quantity: 1}})
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// the placements must serialize: the loser of the race amends the
	// winner's order instead of creating a second one
	var count int64
	require.NoError(t, db.Model(&model.Order{}).Where("table_id = ?", table.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var order model.Order
	require.NoError(t, db.Where("table_id = ?", table.ID).First(&order).Error)
	require.Equal(t, 900.00, order.Total)
	require.Equal(t, 900.00, itemsTotal(t, db, order.ID))

	reloaded := reloadTable(t, db, table.ID)
	require.Equal(t, constants.TABLE_WAITING_FOOD, reloaded.Status)
	require.NotNil(t, reloaded.CurrentOrderID)
	require.Equal(t, order.ID, *reloaded.CurrentOrderID)
}

func TestPlaceCustomerOrderEndToEnd(t *testing.T) {
	engine, _, db := newTestEngine(t)
	ribeye := seedProduct(t, db, "ribeye", 450.00, true, true)
	table := seedTable(t, db, "1")

	order, dropped, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: ribeye, Quantity: 2}})
	require.NoError(t, err)
	require.Equal(t, 0, dropped)
	require.Equal(t, constants.ORDER_PENDING, order.Status)
	require.Equal(t, 900.00, order.Total)
	require.Len(t, order.Items, 1)
	require.Equal(t, 450.00, order.Items[0].PriceAtMoment)

	table = reloadTable(t, db, table.ID)
	require.Equal(t, constants.TABLE_WAITING_FOOD, table.Status)
	require.NotNil(t, table.CurrentOrderID)
	require.Equal(t, order.ID, *table.CurrentOrderID)

	for _, status := range []string{constants.ORDER_COOKING, constants.ORDER_READY, constants.ORDER_SERVED} {
		order, err = engine.UpdateStatus(order.ID, status)
		require.NoError(t, err)
		require.Equal(t, status, order.Status)
	}
	require.Equal(t, constants.TABLE_EATING, reloadTable(t, db, table.ID).Status)

	order, err = engine.Settle(order.ID)
	require.NoError(t, err)
	require.Equal(t, constants.ORDER_PAID, order.Status)

	table = reloadTable(t, db, table.ID)
	require.Equal(t, constants.TABLE_DIRTY, table.Status)
	require.Nil(t, table.CurrentOrderID)
}

func TestPlaceCustomerOrderReusesActiveOrder(t *testing.T) {
	engine, _, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "2")

	first, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)

	second, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 2}})
	require.NoError(t, err)

	// the second placement amends, it never races a second current order in
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 360.00, second.Total)
	require.Equal(t, second.Total, itemsTotal(t, db, second.ID))

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.EqualValues(t, 1, orderCount)
}

func TestPlaceCustomerOrderReopensFinishedOrder(t *testing.T) {
	engine, _, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "3")

	order, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", order.ID).Update("status", constants.ORDER_SERVED).Error)

	reopened, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)
	require.Equal(t, order.ID, reopened.ID)
	require.Equal(t, constants.ORDER_COOKING, reopened.Status)
}

func TestPlaceCustomerOrderHealsStalePaidPointer(t *testing.T) {
	engine, _, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "4")

	stale, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)

	// paid order left behind with the pointer still set
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", stale.ID).Update("status", constants.ORDER_PAID).Error)

	fresh, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)
	require.NotEqual(t, stale.ID, fresh.ID)
	require.Equal(t, constants.ORDER_PENDING, fresh.Status)
	require.Equal(t, 120.00, fresh.Total)

	updated := reloadTable(t, db, table.ID)
	require.Equal(t, fresh.ID, *updated.CurrentOrderID)
}

func TestInvalidItemsAreDroppedSilently(t *testing.T) {
	engine, _, db := newTestEngine(t)
	valid := seedProduct(t, db, "valid", 100.00, true, true)
	inactive := seedProduct(t, db, "inactive", 50.00, false, true)
	soldOut := seedProduct(t, db, "sold-out", 50.00, true, false)
	table := seedTable(t, db, "5")

	order, dropped, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{
		{ProductID: valid, Quantity: 1},
		{ProductID: inactive, Quantity: 1},
		{ProductID: soldOut, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	})
	require.NoError(t, err)
	require.Equal(t, 3, dropped)
	require.Len(t, order.Items, 1)
	require.Equal(t, 100.00, order.Total)
}

func TestPriceAtMomentSurvivesCatalogChange(t *testing.T) {
	engine, _, db := newTestEngine(t)
	ribeye := seedProduct(t, db, "ribeye", 450.00, true, true)
	table := seedTable(t, db, "6")

	_, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: ribeye, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", ribeye).Update("price", 999.00).Error)

	amended, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: ribeye, Quantity: 1}})
	require.NoError(t, err)
	require.Equal(t, 450.00+999.00, amended.Total)
	require.Equal(t, amended.Total, itemsTotal(t, db, amended.ID))
	require.Equal(t, 450.00, amended.Items[0].PriceAtMoment)
}

func TestSettleIsIdempotent(t *testing.T) {
	engine, rec, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "7")

	order, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)

	settled, err := engine.Settle(order.ID)
	require.NoError(t, err)
	require.Equal(t, constants.ORDER_PAID, settled.Status)
	notified := rec.count()

	again, err := engine.Settle(order.ID)
	require.NoError(t, err)
	require.Equal(t, constants.ORDER_PAID, again.Status)
	require.Equal(t, notified, rec.count())

	updated := reloadTable(t, db, table.ID)
	require.Equal(t, constants.TABLE_DIRTY, updated.Status)
	require.Nil(t, updated.CurrentOrderID)
}

func TestSettleEmitsOrderIDOnly(t *testing.T) {
	engine, rec, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "8")

	order, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)

	_, err = engine.Settle(order.ID)
	require.NoError(t, err)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	var paid *recordedEvent
	for i := range rec.events {
		if rec.events[i].topic == constants.EVENT_ORDER_PAID {
			paid = &rec.events[i]
		}
	}
	require.NotNil(t, paid)
	require.Equal(t, PaidEvent{OrderID: order.ID}, paid.payload)
}

func TestCreateStaffOrderRequiresTable(t *testing.T) {
	engine, rec, db := newTestEngine(t)
	seedProduct(t, db, "salad", 120.00, true, true)

	_, _, err := engine.CreateStaffOrder(42, []model.RequestedItem{{ProductID: 1, Quantity: 1}})
	require.Error(t, err)
	require.Equal(t, KindNotFound, KindOf(err))
	require.Equal(t, 0, rec.count())

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.EqualValues(t, 0, orderCount)
}

func TestCreateStaffOrderLinksTable(t *testing.T) {
	engine, rec, db := newTestEngine(t)
	ribeye := seedProduct(t, db, "ribeye", 450.00, true, true)
	table := seedTable(t, db, "9")

	order, _, err := engine.CreateStaffOrder(table.ID, []model.RequestedItem{{ProductID: ribeye, Quantity: 1}})
	require.NoError(t, err)
	require.Equal(t, constants.ORDER_TYPE_DINE_IN, order.OrderType)
	require.NotEmpty(t, order.PublicCode)
	require.NotNil(t, order.Table)

	updated := reloadTable(t, db, table.ID)
	require.Equal(t, constants.TABLE_WAITING_FOOD, updated.Status)
	require.Equal(t, order.ID, *updated.CurrentOrderID)

	require.Equal(t, []string{constants.EVENT_NEW_ORDER, constants.EVENT_TABLE_UPDATED}, rec.topics())
}

func TestCreateTakeoutOrderValidation(t *testing.T) {
	engine, _, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)

	_, _, err := engine.CreateTakeoutOrder("John", nil)
	require.Equal(t, KindValidation, KindOf(err))

	_, _, err = engine.CreateTakeoutOrder("   ", []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.Equal(t, KindValidation, KindOf(err))

	order, _, err := engine.CreateTakeoutOrder(" John ", []model.RequestedItem{{ProductID: salad, Quantity: 2}})
	require.NoError(t, err)
	require.Equal(t, "John", order.CustomerName)
	require.Equal(t, constants.ORDER_TYPE_TAKEOUT, order.OrderType)
	require.Nil(t, order.TableID)
	require.Equal(t, 240.00, order.Total)
}

func TestUpdateStatusRejectsBackwardMove(t *testing.T) {
	engine, _, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "10")

	order, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)

	order, err = engine.UpdateStatus(order.ID, constants.ORDER_READY)
	require.NoError(t, err)

	_, err = engine.UpdateStatus(order.ID, constants.ORDER_PENDING)
	require.Equal(t, KindInvalidState, KindOf(err))

	// unchanged after the rejected move
	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	require.Equal(t, constants.ORDER_READY, reloaded.Status)
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	engine, rec, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "11")

	order, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)
	before := rec.count()

	same, err := engine.UpdateStatus(order.ID, constants.ORDER_PENDING)
	require.NoError(t, err)
	require.Equal(t, constants.ORDER_PENDING, same.Status)
	require.Equal(t, before, rec.count())
}

func TestEarlySettlementFromPending(t *testing.T) {
	engine, _, db := newTestEngine(t)
	salad := seedProduct(t, db, "salad", 120.00, true, true)
	table := seedTable(t, db, "12")

	order, _, err := engine.PlaceCustomerOrder(table.ID, []model.RequestedItem{{ProductID: salad, Quantity: 1}})
	require.NoError(t, err)

	paid, err := engine.UpdateStatus(order.ID, constants.ORDER_PAID)
	require.NoError(t, err)
	require.Equal(t, constants.ORDER_PAID, paid.Status)

	// a paid order must never stay referenced by its table
	updated := reloadTable(t, db, table.ID)
	require.Equal(t, constants.TABLE_DIRTY, updated.Status)
	require.Nil(t, updated.CurrentOrderID)
}
