package mensa

import (
	"testing"

	"github.com/floork/mensa-cli/internal/openmensa"
)

func price(v float64) *float64 { return &v }

func TestToRow(t *testing.T) {
	t.Run("maps all tiers and joins notes", func(t *testing.T) {
		meal := openmensa.Meal{
			Name:  "Linseneintopf",
			Notes: []string{"vegan", "glutenfrei"},
			Prices: openmensa.Prices{
				Students:  price(2.5),
				Employees: price(4.1),
				Pupils:    price(3.0),
				Others:    price(5.0),
			},
		}

		row := ToRow(meal)
		if row.Name != "Linseneintopf" {
			t.Errorf("Name = %q", row.Name)
		}
		if row.StudentPrice != 2.5 || row.EmployeePrice != 4.1 {
			t.Errorf("prices = %v/%v, want 2.5/4.1", row.StudentPrice, row.EmployeePrice)
		}
		if row.GuestPrice != 3.0 {
			t.Errorf("GuestPrice = %v, want the pupils tier 3.0", row.GuestPrice)
		}
		if row.Notes != "vegan, glutenfrei" {
			t.Errorf("Notes = %q, want %q", row.Notes, "vegan, glutenfrei")
		}
	})

	t.Run("total for a meal with nothing published", func(t *testing.T) {
		row := ToRow(openmensa.Meal{Name: "Mystery"})
		if row.StudentPrice != 0.0 || row.EmployeePrice != 0.0 || row.GuestPrice != 0.0 {
			t.Errorf("prices = %v/%v/%v, want all 0.0",
				row.StudentPrice, row.EmployeePrice, row.GuestPrice)
		}
		if row.Notes != "" {
			t.Errorf("Notes = %q, want empty", row.Notes)
		}
	})

	t.Run("zero price stays zero", func(t *testing.T) {
		row := ToRow(openmensa.Meal{Prices: openmensa.Prices{Students: price(0.0)}})
		if row.StudentPrice != 0.0 {
			t.Errorf("StudentPrice = %v, want 0.0", row.StudentPrice)
		}
	})
}

func TestRows(t *testing.T) {
	meals := []openmensa.Meal{
		{Name: "Pasta"},
		{Name: "Curry"},
	}

	rows := Rows(meals)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "Pasta" || rows[1].Name != "Curry" {
		t.Errorf("rows out of order: %+v", rows)
	}
}
