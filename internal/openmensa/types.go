package openmensa

// Canteen is a dining facility as published by the OpenMensa API.
// Identity is the id; canteens are never mutated locally.
type Canteen struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates"` // [lat, lon], may be null
}

// Prices holds the per-audience price tiers for a meal. A nil tier means the
// canteen published no price for that audience, which is distinct from a
// price of zero.
type Prices struct {
	Students  *float64 `json:"students"`
	Employees *float64 `json:"employees"`
	Pupils    *float64 `json:"pupils"`
	Others    *float64 `json:"others"`
}

// Meal is one menu item offered by a canteen on a given date.
type Meal struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Notes    []string `json:"notes"`
	Prices   Prices   `json:"prices"`
}
