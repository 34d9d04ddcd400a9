package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-ops/db"
	"restaurant-ops/models"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrLoginThrottled is returned while a cooldown from repeated failures is
// active; see LoginWaitSeconds for the remaining time.
var ErrLoginThrottled = errors.New("too many failed logins, try again later")

// Authenticate checks username/password against the users table. Only
// active users can log in. Failures feed the throttle; success resets it.
func Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, ValidationError{Field: "username", Message: "username and password are required"}
	}

	wait, err := LoginWaitSeconds(ctx, username)
	if err != nil {
		return nil, err
	}
	if wait > 0 {
		return nil, ErrLoginThrottled
	}

	var u models.User
	var hash string
	err = db.Pool.QueryRow(ctx, `
		SELECT id, username, password_hash, name, role, active, created_at
		FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &hash, &u.Name, &u.Role, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = recordLoginFailed(ctx, username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !u.Active {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		_ = recordLoginFailed(ctx, username)
		return nil, ErrInvalidCredentials
	}

	_ = recordLoginSuccess(ctx, username)
	return &u, nil
}

// RegisterUser creates a user with a bcrypt-hashed password. Admin action.
func RegisterUser(ctx context.Context, username, password, name, role string) (int64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return 0, ValidationError{Field: "username", Message: "username is required"}
	}
	if len(password) < 6 {
		return 0, ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if !validRole(role) {
		return 0, ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", role)}
	}

	var exists int
	err := db.Pool.QueryRow(ctx, `SELECT 1 FROM users WHERE username = $1`, username).Scan(&exists)
	if err == nil {
		return 0, ValidationError{Field: "username", Message: "username already taken"}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		username, string(hash), name, role,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// ListUsers returns active users, optionally filtered by role, by name.
func ListUsers(ctx context.Context, role string) ([]models.User, error) {
	query := `
		SELECT id, username, name, role, active, created_at
		FROM users WHERE active = TRUE`
	args := []any{}
	if role != "" {
		query += ` AND role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY name`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleWaiter, models.RoleCustomer:
		return true
	}
	return false
}
