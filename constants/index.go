package constants

// User roles
const (
	ROLE_SUPERUSER = "superuser"
	ROLE_ADMIN     = "admin"
	ROLE_WAITER    = "waiter"
	ROLE_KITCHEN   = "kitchen"
	ROLE_CASHIER   = "cashier"
)

var AllRoles = []string{ROLE_SUPERUSER, ROLE_ADMIN, ROLE_WAITER, ROLE_KITCHEN, ROLE_CASHIER}

// Order statuses. pending is initial, paid is terminal.
const (
	ORDER_PENDING = "pending"
	ORDER_COOKING = "cooking"
	ORDER_READY   = "ready"
	ORDER_SERVED  = "served"
	ORDER_PAID    = "paid"
)

// Order types
const (
	ORDER_TYPE_DINE_IN = "dine-in"
	ORDER_TYPE_TAKEOUT = "takeout"
	ORDER_TYPE_PICKUP  = "pickup"
)

// Table statuses
const (
	TABLE_FREE         = "free"
	TABLE_OCCUPIED     = "occupied"
	TABLE_WAITING_FOOD = "waiting_food"
	TABLE_EATING       = "eating"
	TABLE_PAYING       = "paying"
	TABLE_DIRTY        = "dirty"
)

// Realtime event topics. EVENT_CALL_WAITER is the only inbound one: guests
// send it from the QR menu and the hub rebroadcasts EVENT_WAITER_CALLED.
const (
	EVENT_CALL_WAITER     = "call_waiter"
	EVENT_NEW_ORDER       = "new_order"
	EVENT_ORDER_UPDATED   = "order_updated"
	EVENT_ORDER_PAID      = "order_paid"
	EVENT_TABLE_UPDATED   = "table_updated"
	EVENT_PRODUCT_UPDATED = "product_updated"
	EVENT_WAITER_CALLED   = "waiter_called"
)

// User-facing messages
const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	MISSING_LOGIN_INPUT        = "Username and password are required"
	INVALID_USERNAME           = "Username does not exist"
	INVALID_PASSWORD           = "Password is incorrect"
	NOT_ADMIN                  = "Admin role required"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
	SUPERUSER_CANNOT_BE_EDITED = "The root superuser cannot be modified or deleted"
)
