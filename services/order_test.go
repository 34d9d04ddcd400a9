package services

import (
	"context"
	"errors"
	"testing"

	"restaurant-ops/db"
	"restaurant-ops/models"
)

func TestValidOrderTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderPending, models.OrderPreparing, true},
		{models.OrderPending, models.OrderReady, false},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPreparing, models.OrderReady, true},
		{models.OrderPreparing, models.OrderPending, false},
		{models.OrderPreparing, models.OrderCancelled, true},
		{models.OrderReady, models.OrderDelivered, true},
		{models.OrderReady, models.OrderPreparing, false},
		{models.OrderReady, models.OrderCancelled, true},
		{models.OrderDelivered, models.OrderPreparing, false},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderPending, false},
		{models.OrderCancelled, models.OrderCancelled, false},
		{"", models.OrderPending, false},
		{models.OrderPending, "", false},
	}
	for _, tt := range tests {
		got := ValidOrderTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidOrderTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestComputeOrderTotal(t *testing.T) {
	lines := []models.OrderLine{
		{Quantity: 2, UnitPrice: 25.00, Subtotal: 50.00},
		{Quantity: 1, UnitPrice: 10.00, Subtotal: 10.00},
	}
	if got := ComputeOrderTotal(lines); got != 60.00 {
		t.Errorf("ComputeOrderTotal = %.2f, want 60.00", got)
	}
	if got := ComputeOrderTotal(nil); got != 0 {
		t.Errorf("ComputeOrderTotal(nil) = %.2f, want 0", got)
	}
}

func TestValidateCreateOrder(t *testing.T) {
	tableID := int64(3)
	tests := []struct {
		name    string
		in      models.CreateOrderInput
		wantErr bool
	}{
		{"takeaway ok", models.CreateOrderInput{CustomerName: "Ana", Kind: models.OrderTakeaway}, false},
		{"dine-in with table", models.CreateOrderInput{CustomerName: "Ana", Kind: models.OrderDineIn, TableID: &tableID}, false},
		{"dine-in without table", models.CreateOrderInput{CustomerName: "Ana", Kind: models.OrderDineIn}, true},
		{"delivery with address", models.CreateOrderInput{CustomerName: "Ana", Kind: models.OrderDelivery, DeliveryAddress: "123 Main St"}, false},
		{"delivery without address", models.CreateOrderInput{CustomerName: "Ana", Kind: models.OrderDelivery}, true},
		{"delivery blank address", models.CreateOrderInput{CustomerName: "Ana", Kind: models.OrderDelivery, DeliveryAddress: "   "}, true},
		{"empty name", models.CreateOrderInput{Kind: models.OrderTakeaway}, true},
		{"unknown kind", models.CreateOrderInput{CustomerName: "Ana", Kind: "drive_thru"}, true},
	}
	for _, tt := range tests {
		err := ValidateCreateOrder(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateCreateOrder() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil {
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("%s: error is %T, want ValidationError", tt.name, err)
			}
		}
	}
}

func TestAddOrderLineRejectsBadQuantity(t *testing.T) {
	// Quantity is validated before any storage call, so no pool is needed.
	for _, qty := range []int{0, -1, -10} {
		err := AddOrderLine(context.Background(), 1, 1, qty)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("AddOrderLine(qty=%d) error = %v, want ValidationError", qty, err)
		}
	}
}

// Integration tests for the order lifecycle (require DB). Skip if db.Pool is
// nil or -short.
func TestOrderLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping order integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping order integration test: no DB pool")
	}
	ctx := context.Background()

	catID, err := createTestCategory(ctx)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	itemA, err := CreateMenuItem(ctx, "it-lomo", "", 25.00, catID)
	if err != nil {
		t.Fatalf("create item A: %v", err)
	}
	itemB, err := CreateMenuItem(ctx, "it-chicha", "", 10.00, catID)
	if err != nil {
		t.Fatalf("create item B: %v", err)
	}

	orderID, err := CreateOrder(ctx, models.CreateOrderInput{
		CustomerName: "Integration Test",
		Kind:         models.OrderTakeaway,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// total stays the derived sum of lines
	if err := AddOrderLine(ctx, orderID, itemA, 2); err != nil {
		t.Fatalf("add line A: %v", err)
	}
	if err := AddOrderLine(ctx, orderID, itemB, 1); err != nil {
		t.Fatalf("add line B: %v", err)
	}
	o, err := GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if o.Total != 60.00 {
		t.Errorf("total = %.2f, want 60.00", o.Total)
	}

	// price snapshot: raising the menu price must not move existing lines
	newPrice := 99.00
	if err := UpdateMenuItem(ctx, itemA, models.MenuItemPatch{Price: &newPrice}); err != nil {
		t.Fatalf("update price: %v", err)
	}
	lines, err := GetOrderLines(ctx, orderID)
	if err != nil {
		t.Fatalf("get lines: %v", err)
	}
	for _, l := range lines {
		if l.MenuItemID == itemA && l.UnitPrice != 25.00 {
			t.Errorf("unit price moved to %.2f after menu change, want snapshot 25.00", l.UnitPrice)
		}
	}

	// recompute is idempotent
	if err := RecomputeOrderTotal(ctx, orderID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	o, _ = GetOrder(ctx, orderID)
	if o.Total != 60.00 {
		t.Errorf("total after redundant recompute = %.2f, want 60.00", o.Total)
	}

	// terminal states reject further transitions
	for _, next := range []string{models.OrderPreparing, models.OrderReady, models.OrderDelivered} {
		if err := SetOrderState(ctx, orderID, next, "test"); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
	err = SetOrderState(ctx, orderID, models.OrderPreparing, "test")
	var ite InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Errorf("transition out of delivered: error = %v, want InvalidTransitionError", err)
	}
}

func createTestCategory(ctx context.Context) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO categories (name, description) VALUES ('it-test', '') RETURNING id`,
	).Scan(&id)
	return id, err
}
