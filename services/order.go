package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-ops/db"
	"restaurant-ops/models"

	"github.com/jackc/pgx/v5"
)

// ValidateCreateOrder checks the kind-conditional fields before anything
// touches storage.
func ValidateCreateOrder(in models.CreateOrderInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	switch in.Kind {
	case models.OrderDineIn:
		if in.TableID == nil {
			return ValidationError{Field: "table_id", Message: "table is required for dine-in orders"}
		}
	case models.OrderDelivery:
		if strings.TrimSpace(in.DeliveryAddress) == "" {
			return ValidationError{Field: "delivery_address", Message: "delivery address is required for delivery orders"}
		}
	case models.OrderTakeaway:
		// nothing extra
	default:
		return ValidationError{Field: "kind", Message: "kind must be one of: dine_in, takeaway, delivery"}
	}
	return nil
}

// CreateOrder inserts a pending order with total 0 and no lines. For dine-in
// the referenced table flips to occupied in the same transaction.
func CreateOrder(ctx context.Context, in models.CreateOrderInput) (int64, error) {
	if err := ValidateCreateOrder(in); err != nil {
		return 0, err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if in.TableID != nil {
		var ok int
		err := tx.QueryRow(ctx, `SELECT 1 FROM tables WHERE id = $1`, *in.TableID).Scan(&ok)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, NotFoundError{Entity: "table", ID: *in.TableID}
			}
			return 0, err
		}
	}

	var addr, phone, notes *string
	if in.DeliveryAddress != "" {
		addr = &in.DeliveryAddress
	}
	if in.ContactPhone != "" {
		phone = &in.ContactPhone
	}
	if in.Notes != "" {
		notes = &in.Notes
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, kind, state, total, waiter_id, table_id,
			delivery_address, contact_phone, notes)
		VALUES ($1, $2, $3, 0, $4, $5, $6, $7, $8)
		RETURNING id`,
		in.CustomerName, in.Kind, models.OrderPending, in.WaiterID, in.TableID,
		addr, phone, notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	if in.Kind == models.OrderDineIn && in.TableID != nil {
		if _, err := tx.Exec(ctx, `UPDATE tables SET state = $1 WHERE id = $2`,
			models.TableOccupied, *in.TableID); err != nil {
			return 0, fmt.Errorf("occupy table: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// AddOrderLine snapshots the item's current price into the new line and
// recomputes the order total, both inside one transaction. A failed call
// leaves lines and total untouched. The line id is not returned; callers
// that need it query the lines.
func AddOrderLine(ctx context.Context, orderID, menuItemID int64, quantity int) error {
	if quantity <= 0 {
		return ValidationError{Field: "quantity", Message: "quantity must be greater than 0"}
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ok int
	err = tx.QueryRow(ctx, `SELECT 1 FROM orders WHERE id = $1`, orderID).Scan(&ok)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundError{Entity: "order", ID: orderID}
		}
		return err
	}

	var price float64
	err = tx.QueryRow(ctx, `SELECT price FROM menu_items WHERE id = $1`, menuItemID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundError{Entity: "menu item", ID: menuItemID}
		}
		return err
	}

	subtotal := price * float64(quantity)
	_, err = tx.Exec(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)`,
		orderID, menuItemID, quantity, price, subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}

	if err := recomputeTotal(ctx, tx, orderID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RecomputeOrderTotal sets total to the sum of the order's line subtotals
// (zero with no lines). Always a full recomputation, so calling it
// redundantly is harmless.
func RecomputeOrderTotal(ctx context.Context, orderID int64) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE orders SET total = (
			SELECT COALESCE(SUM(subtotal), 0) FROM order_items WHERE order_id = $1
		), updated_at = now()
		WHERE id = $1`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("recompute total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError{Entity: "order", ID: orderID}
	}
	return nil
}

func recomputeTotal(ctx context.Context, tx pgx.Tx, orderID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE orders SET total = (
			SELECT COALESCE(SUM(subtotal), 0) FROM order_items WHERE order_id = $1
		), updated_at = now()
		WHERE id = $1`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("recompute total: %w", err)
	}
	return nil
}

// ComputeOrderTotal is the in-memory counterpart of the recompute statement.
func ComputeOrderTotal(lines []models.OrderLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal
	}
	return total
}

// ListOrders filters by a set of states (OR within the set) and an optional
// date, combined with AND. Ordered by creation time descending.
func ListOrders(ctx context.Context, states []string, date string) ([]models.Order, error) {
	query := `
		SELECT o.id, o.customer_name, o.kind, o.state, o.total, o.waiter_id, u.name,
		       o.table_id, t.number, o.delivery_address, o.contact_phone, o.notes,
		       o.created_at, o.updated_at
		FROM orders o
		LEFT JOIN users u ON o.waiter_id = u.id
		LEFT JOIN tables t ON o.table_id = t.id
		WHERE 1=1`
	args := []any{}
	if len(states) > 0 {
		placeholders := make([]string, len(states))
		for i, s := range states {
			args = append(args, s)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += fmt.Sprintf(` AND o.state IN (%s)`, strings.Join(placeholders, ", "))
	}
	if date != "" {
		args = append(args, date)
		query += fmt.Sprintf(` AND o.created_at::date = $%d::date`, len(args))
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Kind, &o.State, &o.Total,
			&o.WaiterID, &o.WaiterName, &o.TableID, &o.TableNumber,
			&o.DeliveryAddress, &o.ContactPhone, &o.Notes,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := db.Pool.QueryRow(ctx, `
		SELECT o.id, o.customer_name, o.kind, o.state, o.total, o.waiter_id,
		       o.table_id, o.delivery_address, o.contact_phone, o.notes,
		       o.created_at, o.updated_at
		FROM orders o WHERE o.id = $1`,
		id,
	).Scan(&o.ID, &o.CustomerName, &o.Kind, &o.State, &o.Total, &o.WaiterID,
		&o.TableID, &o.DeliveryAddress, &o.ContactPhone, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Entity: "order", ID: id}
		}
		return nil, err
	}
	return &o, nil
}

// GetOrderLines returns the order's lines with item name and description
// joined in for display.
func GetOrderLines(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, mi.name, mi.description,
		       oi.quantity, oi.unit_price, oi.subtotal
		FROM order_items oi
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.MenuItemID, &l.ItemName,
			&l.ItemDescription, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ValidOrderTransition reports whether from → to is an allowed edge.
// Happy path is pending → preparing → ready → delivered; cancelled is
// reachable from any non-terminal state. delivered and cancelled are
// terminal.
func ValidOrderTransition(from, to string) bool {
	if to == models.OrderCancelled {
		switch from {
		case models.OrderPending, models.OrderPreparing, models.OrderReady:
			return true
		}
		return false
	}
	switch from {
	case models.OrderPending:
		return to == models.OrderPreparing
	case models.OrderPreparing:
		return to == models.OrderReady
	case models.OrderReady:
		return to == models.OrderDelivered
	}
	return false
}

// SetOrderState moves the order through its lifecycle, records the change in
// the status history, and releases a dine-in table on delivered/cancelled —
// all in one transaction.
func SetOrderState(ctx context.Context, id int64, newState, changedBy string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var fromState, kind string
	var tableID *int64
	err = tx.QueryRow(ctx, `SELECT state, kind, table_id FROM orders WHERE id = $1`, id).
		Scan(&fromState, &kind, &tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundError{Entity: "order", ID: id}
		}
		return err
	}

	if !ValidOrderTransition(fromState, newState) {
		return InvalidTransitionError{Entity: "order", From: fromState, To: newState}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE orders SET state = $1, updated_at = now() WHERE id = $2 AND state = $3`,
		newState, id, fromState,
	)
	if err != nil {
		return fmt.Errorf("update order state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return InvalidTransitionError{Entity: "order", From: fromState, To: newState}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, from_state, to_state, changed_by)
		VALUES ($1, $2, $3, $4)`,
		id, fromState, newState, changedBy,
	)
	if err != nil {
		return fmt.Errorf("record status change: %w", err)
	}

	terminal := newState == models.OrderDelivered || newState == models.OrderCancelled
	if terminal && kind == models.OrderDineIn && tableID != nil {
		if _, err := tx.Exec(ctx, `UPDATE tables SET state = $1 WHERE id = $2`,
			models.TableAvailable, *tableID); err != nil {
			return fmt.Errorf("release table: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetOrderStatusHistory returns the transition log, oldest first.
func GetOrderStatusHistory(ctx context.Context, orderID int64) ([]models.OrderStatusChange, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT order_id, from_state, to_state, changed_by, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("get status history: %w", err)
	}
	defer rows.Close()

	var changes []models.OrderStatusChange
	for rows.Next() {
		var c models.OrderStatusChange
		if err := rows.Scan(&c.OrderID, &c.FromState, &c.ToState, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
