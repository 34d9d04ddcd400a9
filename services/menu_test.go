package services

import (
	"context"
	"errors"
	"testing"

	"restaurant-ops/models"
)

func TestBuildMenuItemUpdate(t *testing.T) {
	name := "Lomo Saltado"
	price := 36.50
	available := false

	set, args := buildMenuItemUpdate(models.MenuItemPatch{Name: &name})
	if set != "name = $1" {
		t.Errorf("single field: set = %q", set)
	}
	if len(args) != 1 || args[0] != name {
		t.Errorf("single field: args = %v", args)
	}

	set, args = buildMenuItemUpdate(models.MenuItemPatch{Name: &name, Price: &price, Available: &available})
	if set != "name = $1, price = $2, available = $3" {
		t.Errorf("three fields: set = %q", set)
	}
	if len(args) != 3 || args[1] != price || args[2] != available {
		t.Errorf("three fields: args = %v", args)
	}
}

func TestMenuItemPatchEmpty(t *testing.T) {
	if !(models.MenuItemPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}
	name := "x"
	if (models.MenuItemPatch{Name: &name}).Empty() {
		t.Error("patch with name should not be empty")
	}
}

func TestCreateMenuItemValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := CreateMenuItem(ctx, "", "", 10, 1); err == nil {
		t.Error("empty name: want ValidationError, got nil")
	}
	for _, price := range []float64{0, -5} {
		_, err := CreateMenuItem(ctx, "Ceviche", "", price, 1)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("price %.2f: error = %v, want ValidationError", price, err)
		}
	}
}

func TestUpdateMenuItemEmptyPatch(t *testing.T) {
	err := UpdateMenuItem(context.Background(), 1, models.MenuItemPatch{})
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("empty patch: error = %v, want ValidationError", err)
	}
}
