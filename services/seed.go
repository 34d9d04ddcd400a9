package services

import (
	"context"
	"fmt"

	"restaurant-ops/db"
	"restaurant-ops/models"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username string
	password string
	name     string
	role     string
}

type seedItem struct {
	name        string
	description string
	price       float64
	category    string
}

// Seed inserts starter data for a fresh database. Each table is skipped if
// it already has rows, so running it again is safe.
func Seed(ctx context.Context) error {
	if err := seedUsers(ctx); err != nil {
		return err
	}
	if err := seedCatalog(ctx); err != nil {
		return err
	}
	return seedTables(ctx)
}

func seedUsers(ctx context.Context) error {
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	users := []seedUser{
		{"admin", "admin123", "Head Administrator", models.RoleAdmin},
		{"waiter01", "waiter123", "Carlos Rodriguez", models.RoleWaiter},
		{"waiter02", "waiter123", "Maria Gonzalez", models.RoleWaiter},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		_, err = db.Pool.Exec(ctx, `
			INSERT INTO users (username, password_hash, name, role)
			VALUES ($1, $2, $3, $4)`,
			u.username, string(hash), u.name, u.role,
		)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}
	return nil
}

func seedCatalog(ctx context.Context) error {
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := map[string]string{
		"Starters":     "Plates to begin your meal",
		"Main Courses": "Our house specialties",
		"Drinks":       "Refreshments and cocktails",
		"Desserts":     "Sweet endings",
	}
	categoryIDs := make(map[string]int64)
	for name, desc := range categories {
		var id int64
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`,
			name, desc,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	items := []seedItem{
		{"Ceviche Clasico", "Fresh fish marinated in lime", 25.00, "Starters"},
		{"Causa Limena", "Yellow potato with chicken or tuna", 18.00, "Starters"},
		{"Lomo Saltado", "Stir-fried beef with onion and tomato", 35.00, "Main Courses"},
		{"Aji de Gallina", "Shredded chicken in aji cream", 28.00, "Main Courses"},
		{"Pisco Sour", "Traditional Peruvian cocktail", 15.00, "Drinks"},
		{"Chicha Morada", "Purple corn drink", 8.00, "Drinks"},
		{"Mazamorra Morada", "Purple corn pudding with fruit", 10.00, "Desserts"},
		{"Suspiro Limeno", "Caramel custard with meringue", 12.00, "Desserts"},
	}
	for _, it := range items {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO menu_items (name, description, price, category_id)
			VALUES ($1, $2, $3, $4)`,
			it.name, it.description, it.price, categoryIDs[it.category],
		)
		if err != nil {
			return fmt.Errorf("seed menu item %s: %w", it.name, err)
		}
	}
	return nil
}

func seedTables(ctx context.Context) error {
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tables`).Scan(&count); err != nil {
		return fmt.Errorf("count tables: %w", err)
	}
	if count > 0 {
		return nil
	}

	tables := []struct {
		number   int
		capacity int
		location string
	}{
		{1, 4, "Indoor"}, {2, 2, "Window"}, {3, 6, "Terrace"},
		{4, 4, "Indoor"}, {5, 2, "Window"}, {6, 8, "Private"},
	}
	for _, t := range tables {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO tables (number, capacity, location) VALUES ($1, $2, $3)`,
			t.number, t.capacity, t.location,
		)
		if err != nil {
			return fmt.Errorf("seed table %d: %w", t.number, err)
		}
	}
	return nil
}
