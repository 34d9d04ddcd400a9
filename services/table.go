package services

import (
	"context"
	"errors"
	"fmt"

	"restaurant-ops/db"
	"restaurant-ops/models"

	"github.com/jackc/pgx/v5"
)

// ListTables returns tables ordered by number, optionally filtered by state.
func ListTables(ctx context.Context, state string) ([]models.Table, error) {
	query := `SELECT id, number, capacity, location, state FROM tables`
	args := []any{}
	if state != "" {
		query += ` WHERE state = $1`
		args = append(args, state)
	}
	query += ` ORDER BY number`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.Location, &t.State); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// SetTableState sets the state unconditionally (last writer wins). This is
// the manual override for floor staff; reservation and order flows flip
// tables through their own transitions instead.
func SetTableState(ctx context.Context, tableID int64, state string) error {
	if !validTableState(state) {
		return ValidationError{Field: "state", Message: fmt.Sprintf("unknown table state %q", state)}
	}
	tag, err := db.Pool.Exec(ctx, `UPDATE tables SET state = $1 WHERE id = $2`, state, tableID)
	if err != nil {
		return fmt.Errorf("set table state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError{Entity: "table", ID: tableID}
	}
	return nil
}

func GetTable(ctx context.Context, tableID int64) (*models.Table, error) {
	var t models.Table
	err := db.Pool.QueryRow(ctx, `
		SELECT id, number, capacity, location, state FROM tables WHERE id = $1`,
		tableID,
	).Scan(&t.ID, &t.Number, &t.Capacity, &t.Location, &t.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Entity: "table", ID: tableID}
		}
		return nil, err
	}
	return &t, nil
}

func validTableState(state string) bool {
	switch state {
	case models.TableAvailable, models.TableOccupied, models.TableReserved:
		return true
	}
	return false
}

func tableExists(ctx context.Context, tableID int64) (bool, error) {
	var ok int
	err := db.Pool.QueryRow(ctx, `SELECT 1 FROM tables WHERE id = $1`, tableID).Scan(&ok)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
