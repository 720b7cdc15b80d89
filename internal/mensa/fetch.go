package mensa

import (
	"context"
	"sync"
	"time"

	"github.com/floork/mensa-cli/internal/openmensa"
)

// MenuResult is the outcome of fetching one canteen's menu. Err set means the
// fetch itself failed; an empty Meals with a nil Err means the canteen
// published no menu for the day. The two cases render differently and must
// stay distinguishable.
type MenuResult struct {
	Canteen openmensa.Canteen
	Meals   []openmensa.Meal
	Err     error
}

// FetchAll retrieves the meals of every canteen for the given date. Fetches
// run concurrently and independently: one canteen failing never discards
// another canteen's meals. Results come back in the order the canteens were
// resolved.
func FetchAll(ctx context.Context, provider Provider, canteens []openmensa.Canteen, date time.Time) []MenuResult {
	results := make([]MenuResult, len(canteens))

	var wg sync.WaitGroup
	for i := range canteens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			canteen := canteens[i]
			meals, err := provider.GetMeals(ctx, &canteen, date)
			results[i] = MenuResult{Canteen: canteen, Meals: meals, Err: err}
		}(i)
	}
	wg.Wait()

	return results
}
