package services

import (
	"context"
	"fmt"

	"restaurant-ops/db"
	"restaurant-ops/models"
)

// SalesByDate aggregates delivered orders per day over [from, to],
// dates as YYYY-MM-DD.
func SalesByDate(ctx context.Context, from, to string) ([]models.DailySales, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'),
		       COUNT(*)::int,
		       COALESCE(SUM(total), 0),
		       COALESCE(AVG(total), 0)
		FROM orders
		WHERE state = $1 AND created_at::date BETWEEN $2::date AND $3::date
		GROUP BY created_at::date
		ORDER BY created_at::date`,
		models.OrderDelivered, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("sales by date: %w", err)
	}
	defer rows.Close()

	var sales []models.DailySales
	for rows.Next() {
		var s models.DailySales
		if err := rows.Scan(&s.Date, &s.OrderCount, &s.TotalSales, &s.AverageSale); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// TopMenuItems ranks items by quantity sold across delivered orders.
// Empty from/to means all time.
func TopMenuItems(ctx context.Context, from, to string, limit int) ([]models.ItemSales, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT mi.name, SUM(oi.quantity)::int, SUM(oi.subtotal)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE o.state = $1`
	args := []any{models.OrderDelivered}
	if from != "" && to != "" {
		args = append(args, from, to)
		query += fmt.Sprintf(` AND o.created_at::date BETWEEN $%d::date AND $%d::date`, len(args)-1, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` GROUP BY mi.id, mi.name ORDER BY SUM(oi.quantity) DESC LIMIT $%d`, len(args))

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top menu items: %w", err)
	}
	defer rows.Close()

	var items []models.ItemSales
	for rows.Next() {
		var it models.ItemSales
		if err := rows.Scan(&it.ItemName, &it.QuantitySold, &it.Revenue); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
