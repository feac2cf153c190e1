package order

// OrderStatus represents the financial/fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "PENDING"
	OrderStatusPartiallyPaid OrderStatus = "PARTIALLY_PAID"
	OrderStatusPaid          OrderStatus = "PAID"
	OrderStatusProcessing    OrderStatus = "PROCESSING"
	OrderStatusShipped       OrderStatus = "SHIPPED"
	OrderStatusCompleted     OrderStatus = "COMPLETED"
	OrderStatusCanceled      OrderStatus = "CANCELED"
)

// AllStatuses lists every known status in lifecycle order.
var AllStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPartiallyPaid,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCanceled,
}

var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:       {OrderStatusPartiallyPaid, OrderStatusPaid, OrderStatusProcessing, OrderStatusCanceled},
	OrderStatusPartiallyPaid: {OrderStatusPaid, OrderStatusProcessing, OrderStatusCanceled},
	OrderStatusPaid:          {OrderStatusProcessing, OrderStatusCanceled},
	OrderStatusProcessing:    {OrderStatusShipped, OrderStatusCanceled},
	OrderStatusShipped:       {OrderStatusCompleted, OrderStatusCanceled},
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPartiallyPaid, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition leaves this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status.
// Staying in the same status is always allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s == target {
		return true
	}
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionPolicy selects whether status changes must follow the lifecycle graph.
type TransitionPolicy int

const (
	// PermissiveTransitions accepts any known status regardless of the current one.
	PermissiveTransitions TransitionPolicy = iota
	// StrictTransitions only accepts edges allowed by CanTransitionTo.
	StrictTransitions
)
