package lifecycle

// Broadcaster is the one-way notification sink the engine pushes committed
// state into. Implementations must be non-blocking and best-effort: the
// engine calls Notify only after commit and never fails because of it.
type Broadcaster interface {
	Notify(topic string, payload any)
}

// PaidEvent is the order_paid payload. It carries only the identifier;
// consumers refetch if they need the full aggregate.
type PaidEvent struct {
	OrderID uint `json:"orderId"`
}

type NopBroadcaster struct{}

func (NopBroadcaster) Notify(string, any) {}
