package services

import (
	"context"
	"testing"

	"restaurant-ops/models"
)

func TestValidReservationTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.ReservationPending, models.ReservationConfirmed, true},
		{models.ReservationPending, models.ReservationCancelled, true},
		{models.ReservationPending, models.ReservationCompleted, false},
		{models.ReservationConfirmed, models.ReservationCancelled, true},
		{models.ReservationConfirmed, models.ReservationCompleted, true},
		{models.ReservationConfirmed, models.ReservationPending, false},
		{models.ReservationCancelled, models.ReservationPending, false},
		{models.ReservationCancelled, models.ReservationConfirmed, false},
		{models.ReservationCompleted, models.ReservationConfirmed, false},
		{"", models.ReservationConfirmed, false},
		{models.ReservationPending, "", false},
	}
	for _, tt := range tests {
		got := ValidReservationTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidReservationTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCreateReservationValidation(t *testing.T) {
	base := models.CreateReservationInput{
		CustomerName: "Ana",
		Date:         "2024-06-01",
		Time:         "19:00",
		PartySize:    4,
	}

	in := base
	in.CustomerName = ""
	if _, err := CreateReservation(context.Background(), in); err == nil {
		t.Error("empty customer name: want ValidationError, got nil")
	}

	in = base
	in.PartySize = 0
	if _, err := CreateReservation(context.Background(), in); err == nil {
		t.Error("party size 0: want ValidationError, got nil")
	}

	in = base
	in.Date = ""
	if _, err := CreateReservation(context.Background(), in); err == nil {
		t.Error("empty date: want ValidationError, got nil")
	}
}
