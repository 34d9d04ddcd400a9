package models

import "time"

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

type Reservation struct {
	ID           int64
	CustomerName string
	Phone        *string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	PartySize    int
	TableID      *int64
	TableNumber  *int // joined for display
	State        string
	Notes        string
	CreatedAt    time.Time
}

type CreateReservationInput struct {
	CustomerName string
	Phone        string
	Date         string
	Time         string
	PartySize    int
	TableID      *int64
	Notes        string
}
