package models

import "time"

const (
	OrderDineIn   = "dine_in"
	OrderTakeaway = "takeaway"
	OrderDelivery = "delivery"
)

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID              int64
	CustomerName    string
	Kind            string
	State           string
	Total           float64 // always recomputed from lines, never set by callers
	WaiterID        *int64
	WaiterName      *string // joined for display
	TableID         *int64
	TableNumber     *int // joined for display
	DeliveryAddress *string
	ContactPhone    *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderLine keeps the unit price snapshotted at creation time; later menu
// price changes do not touch it.
type OrderLine struct {
	ID              int64
	OrderID         int64
	MenuItemID      int64
	ItemName        string // joined for display
	ItemDescription string // joined for display
	Quantity        int
	UnitPrice       float64
	Subtotal        float64
}

type CreateOrderInput struct {
	CustomerName    string
	Kind            string
	WaiterID        *int64
	TableID         *int64
	DeliveryAddress string
	ContactPhone    string
	Notes           string
}

// OrderStatusChange is one row of the transition audit log.
type OrderStatusChange struct {
	OrderID   int64
	FromState string
	ToState   string
	ChangedBy string
	ChangedAt time.Time
}
