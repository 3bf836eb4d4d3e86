package lifecycle

import (
	"restaurant_manager/constants"
	"restaurant_manager/model"
	"strings"

	"github.com/google/uuid"
)

var statusRank = map[string]int{
	constants.ORDER_PENDING: 0,
	constants.ORDER_COOKING: 1,
	constants.ORDER_READY:   2,
	constants.ORDER_SERVED:  3,
	constants.ORDER_PAID:    4,
}

// KnownStatus reports whether s is one of the order statuses.
func KnownStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition allows forward moves only. Jumping ahead is permitted, which
// also covers early settlement (any non-paid status straight to paid). A
// same-status transition is legal and treated as a no-op by the engine.
func CanTransition(current, target string) bool {
	currentRank, ok := statusRank[current]
	targetRank, ok2 := statusRank[target]
	if !ok || !ok2 {
		return false
	}
	return targetRank >= currentRank
}

// resolveItems turns requested items into line items priced from the catalog
// snapshot. Items referencing a missing, inactive or unavailable product are
// dropped, not rejected; the dropped count is surfaced as a diagnostic.
func resolveItems(catalog Catalog, requested []model.RequestedItem) ([]model.OrderItem, float64, int, error) {
	var items []model.OrderItem
	var total float64
	dropped := 0

	for _, r := range requested {
		if r.Quantity <= 0 {
			dropped++
			continue
		}
		snapshot, err := catalog.Lookup(r.ProductID)
		if err != nil {
			return nil, 0, 0, err
		}
		if snapshot == nil || !snapshot.Active || !snapshot.Available {
			dropped++
			continue
		}
		items = append(items, model.OrderItem{
			ProductID:     snapshot.ID,
			Quantity:      r.Quantity,
			PriceAtMoment: snapshot.Price,
		})
		total += snapshot.Price * float64(r.Quantity)
	}
	return items, total, dropped, nil
}

// newPublicCode generates the printable order code, e.g. ORD-9F2C81AB.
func newPublicCode() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
