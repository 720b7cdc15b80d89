package mensa

import (
	"context"
	"errors"
	"time"

	"github.com/floork/mensa-cli/internal/openmensa"
)

// Provider is the canteen-data source the resolver and fetcher run against.
// *openmensa.Client satisfies it; tests substitute a fake.
type Provider interface {
	GetCanteenByID(ctx context.Context, id int) (*openmensa.Canteen, error)
	GetCanteensByIDs(ctx context.Context, ids []int) ([]openmensa.Canteen, error)
	GetCanteensByLocation(ctx context.Context, location string) ([]openmensa.Canteen, error)
	GetMeals(ctx context.Context, canteen *openmensa.Canteen, date time.Time) ([]openmensa.Meal, error)
}

// ErrConflictingSelectors is returned when both an id and a location are
// given for one invocation. The conflict is a validation error, not a
// precedence choice, and is detected before any network call.
var ErrConflictingSelectors = errors.New("use either location or id, not both")

// Selection is the canteen choice of one invocation. A nil ID and an empty
// Location mean the configured fallback canteen set applies.
type Selection struct {
	ID       *int
	Location string

	// Fallback is the configured canteen id set used when neither
	// override is present.
	Fallback []int
}

// ResolveCanteens applies the id / location / configured-fallback precedence
// and returns the canteens to query. An unknown id resolves to
// openmensa.ErrNotFound; the caller reports it and skips meal fetching, it is
// not a hard failure of the process.
func ResolveCanteens(ctx context.Context, provider Provider, sel Selection) ([]openmensa.Canteen, error) {
	if sel.ID != nil && sel.Location != "" {
		return nil, ErrConflictingSelectors
	}

	switch {
	case sel.ID != nil:
		canteen, err := provider.GetCanteenByID(ctx, *sel.ID)
		if err != nil {
			return nil, err
		}
		return []openmensa.Canteen{*canteen}, nil

	case sel.Location != "":
		return provider.GetCanteensByLocation(ctx, sel.Location)

	default:
		return provider.GetCanteensByIDs(ctx, sel.Fallback)
	}
}
