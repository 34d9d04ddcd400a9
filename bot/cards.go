package bot

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant-ops/models"
)

// Button is one inline button (text + callback data).
type Button struct {
	Text         string
	CallbackData string
}

// Card is the text and optional inline keyboard for one entity.
type Card struct {
	Text    string
	Buttons [][]Button
}

func orderStateLabel(state string) string {
	switch state {
	case models.OrderPending:
		return "🟡 Pending"
	case models.OrderPreparing:
		return "🟠 Preparing"
	case models.OrderReady:
		return "🟢 Ready"
	case models.OrderDelivered:
		return "✅ Delivered"
	case models.OrderCancelled:
		return "🔴 Cancelled"
	default:
		return state
	}
}

func orderKindLabel(kind string) string {
	switch kind {
	case models.OrderDineIn:
		return "Dine-in"
	case models.OrderTakeaway:
		return "Takeaway"
	case models.OrderDelivery:
		return "Delivery"
	default:
		return kind
	}
}

// nextOrderStates lists the edges out of the current state, cancel last.
func nextOrderStates(state string) []string {
	switch state {
	case models.OrderPending:
		return []string{models.OrderPreparing, models.OrderCancelled}
	case models.OrderPreparing:
		return []string{models.OrderReady, models.OrderCancelled}
	case models.OrderReady:
		return []string{models.OrderDelivered, models.OrderCancelled}
	}
	return nil
}

func orderActionLabel(state string) string {
	switch state {
	case models.OrderPreparing:
		return "Start preparing"
	case models.OrderReady:
		return "Mark ready"
	case models.OrderDelivered:
		return "Mark delivered"
	case models.OrderCancelled:
		return "Cancel order"
	default:
		return state
	}
}

// BuildOrderCard renders one order with its lines and next-action buttons.
func BuildOrderCard(o *models.Order, lines []models.OrderLine) Card {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Order #%d — %s\n", o.ID, o.CustomerName)
	fmt.Fprintf(&sb, "%s · %s\n", orderKindLabel(o.Kind), orderStateLabel(o.State))
	if o.TableNumber != nil {
		fmt.Fprintf(&sb, "Table %d\n", *o.TableNumber)
	}
	if o.DeliveryAddress != nil {
		fmt.Fprintf(&sb, "Address: %s\n", *o.DeliveryAddress)
	}
	if len(lines) > 0 {
		sb.WriteString("\n")
		for _, l := range lines {
			fmt.Fprintf(&sb, "%d× %s — %.2f\n", l.Quantity, l.ItemName, l.Subtotal)
		}
	}
	fmt.Fprintf(&sb, "\nTotal: %.2f", o.Total)

	var buttons [][]Button
	for _, next := range nextOrderStates(o.State) {
		buttons = append(buttons, []Button{{
			Text:         orderActionLabel(next),
			CallbackData: "order_state:" + strconv.FormatInt(o.ID, 10) + ":" + next,
		}})
	}
	return Card{Text: sb.String(), Buttons: buttons}
}

func tableStateLabel(state string) string {
	switch state {
	case models.TableAvailable:
		return "🟢 available"
	case models.TableOccupied:
		return "🔴 occupied"
	case models.TableReserved:
		return "🟡 reserved"
	default:
		return state
	}
}

// BuildTableCard renders one table with the two manual state overrides that
// make sense from its current state.
func BuildTableCard(t models.Table) Card {
	text := fmt.Sprintf("Table %d (%d seats, %s) — %s",
		t.Number, t.Capacity, t.Location, tableStateLabel(t.State))

	var row []Button
	for _, s := range []string{models.TableAvailable, models.TableOccupied, models.TableReserved} {
		if s == t.State {
			continue
		}
		row = append(row, Button{
			Text:         "Set " + s,
			CallbackData: "table_state:" + strconv.FormatInt(t.ID, 10) + ":" + s,
		})
	}
	return Card{Text: text, Buttons: [][]Button{row}}
}

// BuildReservationCard renders one reservation with its allowed transitions.
func BuildReservationCard(r models.Reservation) Card {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Reservation #%d — %s\n", r.ID, r.CustomerName)
	fmt.Fprintf(&sb, "%s %s · party of %d · %s\n", r.Date, r.Time, r.PartySize, r.State)
	if r.TableNumber != nil {
		fmt.Fprintf(&sb, "Table %d\n", *r.TableNumber)
	}
	if r.Phone != nil {
		fmt.Fprintf(&sb, "📞 %s\n", *r.Phone)
	}
	if r.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s\n", r.Notes)
	}

	var buttons [][]Button
	addBtn := func(label, state string) {
		buttons = append(buttons, []Button{{
			Text:         label,
			CallbackData: "res_state:" + strconv.FormatInt(r.ID, 10) + ":" + state,
		}})
	}
	switch r.State {
	case models.ReservationPending:
		addBtn("Confirm", models.ReservationConfirmed)
		addBtn("Cancel", models.ReservationCancelled)
	case models.ReservationConfirmed:
		addBtn("Complete", models.ReservationCompleted)
		addBtn("Cancel", models.ReservationCancelled)
	}
	return Card{Text: strings.TrimRight(sb.String(), "\n"), Buttons: buttons}
}

// BuildSalesSummary renders the daily report for one date range.
func BuildSalesSummary(days []models.DailySales, top []models.ItemSales) string {
	if len(days) == 0 {
		return "No delivered orders in this period."
	}
	var sb strings.Builder
	sb.WriteString("📊 Sales\n\n")
	for _, d := range days {
		fmt.Fprintf(&sb, "%s: %d orders, %.2f total (avg %.2f)\n",
			d.Date, d.OrderCount, d.TotalSales, d.AverageSale)
	}
	if len(top) > 0 {
		sb.WriteString("\nTop sellers:\n")
		for i, it := range top {
			fmt.Fprintf(&sb, "%d. %s — %d sold, %.2f\n", i+1, it.ItemName, it.QuantitySold, it.Revenue)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
