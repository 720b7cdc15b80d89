package mensa

import (
	"strings"

	"github.com/floork/mensa-cli/internal/openmensa"
)

// TabledMeal is the presentation row shared by the CLI table and the Discord
// embed. It is recomputed per render and never cached.
type TabledMeal struct {
	Name          string
	StudentPrice  float64
	EmployeePrice float64
	GuestPrice    float64
	Notes         string
}

// ToRow maps a meal into its presentation row. This is the single place that
// maps an unpublished price tier to 0.0, so both front ends stay consistent.
// The guest price comes from the pupils tier.
func ToRow(meal openmensa.Meal) TabledMeal {
	return TabledMeal{
		Name:          meal.Name,
		StudentPrice:  PriceOrZero(meal.Prices.Students),
		EmployeePrice: PriceOrZero(meal.Prices.Employees),
		GuestPrice:    PriceOrZero(meal.Prices.Pupils),
		Notes:         strings.Join(meal.Notes, ", "),
	}
}

// Rows maps a meal list into presentation rows, preserving order.
func Rows(meals []openmensa.Meal) []TabledMeal {
	rows := make([]TabledMeal, len(meals))
	for i, meal := range meals {
		rows[i] = ToRow(meal)
	}
	return rows
}

// PriceOrZero is the missing-price policy: an unpublished tier renders as
// 0.0. ToRow and the Discord embed builder both go through it.
func PriceOrZero(p *float64) float64 {
	if p == nil {
		return 0.0
	}
	return *p
}
