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

func ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, description, active FROM categories
		WHERE active = TRUE
		ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// ListMenuItems returns available items, optionally filtered by category,
// ordered by (category name, item name).
func ListMenuItems(ctx context.Context, categoryID *int64) ([]models.MenuItem, error) {
	query := `
		SELECT mi.id, mi.name, mi.description, mi.price, mi.category_id, c.name, mi.available
		FROM menu_items mi
		JOIN categories c ON mi.category_id = c.id
		WHERE mi.available = TRUE`
	args := []any{}
	if categoryID != nil {
		query += ` AND mi.category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY c.name, mi.name`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var it models.MenuItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.CategoryID, &it.CategoryName, &it.Available); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var it models.MenuItem
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, description, price, category_id, available
		FROM menu_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.CategoryID, &it.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Entity: "menu item", ID: id}
		}
		return nil, err
	}
	return &it, nil
}

func CreateMenuItem(ctx context.Context, name, description string, price float64, categoryID int64) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ValidationError{Field: "name", Message: "name is required"}
	}
	if price <= 0 {
		return 0, ValidationError{Field: "price", Message: "price must be greater than 0"}
	}

	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, description, price, categoryID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create menu item: %w", err)
	}
	return id, nil
}

// UpdateMenuItem applies the non-nil fields of patch. Items are never
// physically deleted here; availability is the off switch.
func UpdateMenuItem(ctx context.Context, id int64, patch models.MenuItemPatch) error {
	if patch.Empty() {
		return ValidationError{Field: "patch", Message: "no fields to update"}
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return ValidationError{Field: "price", Message: "price must be greater than 0"}
	}

	set, args := buildMenuItemUpdate(patch)
	args = append(args, id)
	tag, err := db.Pool.Exec(ctx,
		fmt.Sprintf(`UPDATE menu_items SET %s WHERE id = $%d`, set, len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError{Entity: "menu item", ID: id}
	}
	return nil
}

// buildMenuItemUpdate turns a patch into a SET clause and its ordered args.
// Column names are fixed here, never taken from caller input.
func buildMenuItemUpdate(patch models.MenuItemPatch) (string, []any) {
	var clauses []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.CategoryID != nil {
		add("category_id", *patch.CategoryID)
	}
	if patch.Available != nil {
		add("available", *patch.Available)
	}
	return strings.Join(clauses, ", "), args
}
