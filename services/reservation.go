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

// CreateReservation books a party, state pending. The referenced table is
// not touched here; confirming the reservation is what claims it.
func CreateReservation(ctx context.Context, in models.CreateReservationInput) (int64, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return 0, ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if in.PartySize < 1 {
		return 0, ValidationError{Field: "party_size", Message: "party size must be at least 1"}
	}
	if in.Date == "" {
		return 0, ValidationError{Field: "date", Message: "date is required"}
	}
	if in.Time == "" {
		return 0, ValidationError{Field: "time", Message: "time is required"}
	}
	if in.TableID != nil {
		ok, err := tableExists(ctx, *in.TableID)
		if err != nil {
			return 0, fmt.Errorf("check table: %w", err)
		}
		if !ok {
			return 0, NotFoundError{Entity: "table", ID: *in.TableID}
		}
	}

	var phone *string
	if in.Phone != "" {
		phone = &in.Phone
	}

	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO reservations (customer_name, phone, date, time, party_size, table_id, state, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		in.CustomerName, phone, in.Date, in.Time, in.PartySize, in.TableID,
		models.ReservationPending, in.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create reservation: %w", err)
	}
	return id, nil
}

// ListReservations filters combine with AND; empty filters match everything.
// Ordered by (date desc, time desc).
func ListReservations(ctx context.Context, date, state string) ([]models.Reservation, error) {
	query := `
		SELECT r.id, r.customer_name, r.phone, to_char(r.date, 'YYYY-MM-DD'),
		       to_char(r.time, 'HH24:MI'), r.party_size, r.table_id, t.number,
		       r.state, r.notes, r.created_at
		FROM reservations r
		LEFT JOIN tables t ON r.table_id = t.id
		WHERE 1=1`
	args := []any{}
	if date != "" {
		args = append(args, date)
		query += fmt.Sprintf(` AND r.date = $%d`, len(args))
	}
	if state != "" {
		args = append(args, state)
		query += fmt.Sprintf(` AND r.state = $%d`, len(args))
	}
	query += ` ORDER BY r.date DESC, r.time DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var r models.Reservation
		if err := rows.Scan(&r.ID, &r.CustomerName, &r.Phone, &r.Date, &r.Time,
			&r.PartySize, &r.TableID, &r.TableNumber, &r.State, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	var r models.Reservation
	err := db.Pool.QueryRow(ctx, `
		SELECT r.id, r.customer_name, r.phone, to_char(r.date, 'YYYY-MM-DD'),
		       to_char(r.time, 'HH24:MI'), r.party_size, r.table_id, t.number,
		       r.state, r.notes, r.created_at
		FROM reservations r
		LEFT JOIN tables t ON r.table_id = t.id
		WHERE r.id = $1`,
		id,
	).Scan(&r.ID, &r.CustomerName, &r.Phone, &r.Date, &r.Time,
		&r.PartySize, &r.TableID, &r.TableNumber, &r.State, &r.Notes, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFoundError{Entity: "reservation", ID: id}
		}
		return nil, err
	}
	return &r, nil
}

// ValidReservationTransition reports whether from → to is an allowed edge.
// cancelled and completed are terminal.
func ValidReservationTransition(from, to string) bool {
	switch from {
	case models.ReservationPending:
		return to == models.ReservationConfirmed || to == models.ReservationCancelled
	case models.ReservationConfirmed:
		return to == models.ReservationCancelled || to == models.ReservationCompleted
	}
	return false
}

// SetReservationState moves the reservation through its lifecycle and keeps
// the referenced table in step, all in one transaction: confirming claims
// the table (reserved), cancelling or completing releases it.
func SetReservationState(ctx context.Context, id int64, newState string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var fromState string
	var tableID *int64
	err = tx.QueryRow(ctx, `SELECT state, table_id FROM reservations WHERE id = $1`, id).
		Scan(&fromState, &tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NotFoundError{Entity: "reservation", ID: id}
		}
		return err
	}

	if !ValidReservationTransition(fromState, newState) {
		return InvalidTransitionError{Entity: "reservation", From: fromState, To: newState}
	}

	// Guarded update: a concurrent transition loses cleanly instead of
	// overwriting.
	tag, err := tx.Exec(ctx, `
		UPDATE reservations SET state = $1 WHERE id = $2 AND state = $3`,
		newState, id, fromState,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return InvalidTransitionError{Entity: "reservation", From: fromState, To: newState}
	}

	if tableID != nil {
		var tableState string
		switch newState {
		case models.ReservationConfirmed:
			tableState = models.TableReserved
		case models.ReservationCancelled, models.ReservationCompleted:
			tableState = models.TableAvailable
		}
		if tableState != "" {
			if _, err := tx.Exec(ctx, `UPDATE tables SET state = $1 WHERE id = $2`, tableState, *tableID); err != nil {
				return fmt.Errorf("update table state: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}
