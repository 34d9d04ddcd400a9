package bot

import (
	"strings"
	"testing"

	"restaurant-ops/models"
)

func TestBuildOrderCard(t *testing.T) {
	table := 3
	o := &models.Order{
		ID:           123,
		CustomerName: "Ana",
		Kind:         models.OrderDineIn,
		State:        models.OrderPending,
		Total:        60.00,
		TableNumber:  &table,
	}
	lines := []models.OrderLine{
		{Quantity: 2, ItemName: "Lomo Saltado", Subtotal: 50.00},
		{Quantity: 1, ItemName: "Chicha Morada", Subtotal: 10.00},
	}

	card := BuildOrderCard(o, lines)
	for _, want := range []string{"#123", "Ana", "Table 3", "Lomo Saltado", "60.00"} {
		if !strings.Contains(card.Text, want) {
			t.Errorf("card text missing %q:\n%s", want, card.Text)
		}
	}
	if len(card.Buttons) != 2 {
		t.Fatalf("pending order: %d button rows, want 2", len(card.Buttons))
	}
	if got := card.Buttons[0][0].CallbackData; got != "order_state:123:preparing" {
		t.Errorf("first button callback = %q", got)
	}

	o.State = models.OrderDelivered
	card = BuildOrderCard(o, lines)
	if len(card.Buttons) != 0 {
		t.Errorf("delivered order should have no action buttons, got %d rows", len(card.Buttons))
	}
}

func TestNextOrderStates(t *testing.T) {
	tests := []struct {
		state string
		want  []string
	}{
		{models.OrderPending, []string{models.OrderPreparing, models.OrderCancelled}},
		{models.OrderPreparing, []string{models.OrderReady, models.OrderCancelled}},
		{models.OrderReady, []string{models.OrderDelivered, models.OrderCancelled}},
		{models.OrderDelivered, nil},
		{models.OrderCancelled, nil},
	}
	for _, tt := range tests {
		got := nextOrderStates(tt.state)
		if len(got) != len(tt.want) {
			t.Errorf("nextOrderStates(%q) = %v, want %v", tt.state, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("nextOrderStates(%q)[%d] = %q, want %q", tt.state, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBuildReservationCard(t *testing.T) {
	r := models.Reservation{
		ID:           7,
		CustomerName: "Ana",
		Date:         "2024-06-01",
		Time:         "19:00",
		PartySize:    4,
		State:        models.ReservationPending,
	}
	card := BuildReservationCard(r)
	if !strings.Contains(card.Text, "party of 4") {
		t.Errorf("card text missing party size:\n%s", card.Text)
	}
	if len(card.Buttons) != 2 {
		t.Fatalf("pending reservation: %d button rows, want 2", len(card.Buttons))
	}
	if got := card.Buttons[0][0].CallbackData; got != "res_state:7:confirmed" {
		t.Errorf("confirm callback = %q", got)
	}

	r.State = models.ReservationCompleted
	if card = BuildReservationCard(r); len(card.Buttons) != 0 {
		t.Errorf("completed reservation should have no buttons")
	}
}

func TestParseStateCallback(t *testing.T) {
	tests := []struct {
		data   string
		kind   string
		id     int64
		state  string
		wantOK bool
	}{
		{"order_state:5:preparing", "order_state", 5, "preparing", true},
		{"table_state:2:occupied", "table_state", 2, "occupied", true},
		{"res_state:9:confirmed", "res_state", 9, "confirmed", true},
		{"order_state:abc:ready", "", 0, "", false},
		{"order_state:0:ready", "", 0, "", false},
		{"nonsense", "", 0, "", false},
		{"a:b:c:d", "", 0, "", false},
	}
	for _, tt := range tests {
		kind, id, state, ok := parseStateCallback(tt.data)
		if ok != tt.wantOK {
			t.Errorf("parseStateCallback(%q) ok = %v, want %v", tt.data, ok, tt.wantOK)
			continue
		}
		if ok && (kind != tt.kind || id != tt.id || state != tt.state) {
			t.Errorf("parseStateCallback(%q) = (%q, %d, %q)", tt.data, kind, id, state)
		}
	}
}

func TestBuildSalesSummary(t *testing.T) {
	if got := BuildSalesSummary(nil, nil); !strings.Contains(got, "No delivered orders") {
		t.Errorf("empty summary = %q", got)
	}
	days := []models.DailySales{{Date: "2024-06-01", OrderCount: 3, TotalSales: 120.00, AverageSale: 40.00}}
	top := []models.ItemSales{{ItemName: "Lomo Saltado", QuantitySold: 5, Revenue: 175.00}}
	got := BuildSalesSummary(days, top)
	for _, want := range []string{"2024-06-01", "3 orders", "Lomo Saltado"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}
