package mensa

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/floork/mensa-cli/internal/openmensa"
)

// fakeProvider records calls and serves canned canteens and meals.
// The counter is guarded because FetchAll calls GetMeals concurrently.
type fakeProvider struct {
	mu    sync.Mutex
	calls int

	byID       map[int]*openmensa.Canteen
	byLocation map[string][]openmensa.Canteen
	meals      map[int][]openmensa.Meal
	mealErrs   map[int]error
	err        error
}

func (f *fakeProvider) GetCanteenByID(_ context.Context, id int) (*openmensa.Canteen, error) {
	f.count()
	if f.err != nil {
		return nil, f.err
	}
	canteen, ok := f.byID[id]
	if !ok {
		return nil, openmensa.ErrNotFound
	}
	return canteen, nil
}

func (f *fakeProvider) GetCanteensByIDs(_ context.Context, ids []int) ([]openmensa.Canteen, error) {
	f.count()
	if f.err != nil {
		return nil, f.err
	}
	var canteens []openmensa.Canteen
	for _, id := range ids {
		if canteen, ok := f.byID[id]; ok {
			canteens = append(canteens, *canteen)
		}
	}
	return canteens, nil
}

func (f *fakeProvider) GetCanteensByLocation(_ context.Context, location string) ([]openmensa.Canteen, error) {
	f.count()
	if f.err != nil {
		return nil, f.err
	}
	return f.byLocation[location], nil
}

func (f *fakeProvider) GetMeals(_ context.Context, canteen *openmensa.Canteen, _ time.Time) ([]openmensa.Meal, error) {
	f.count()
	if err := f.mealErrs[canteen.ID]; err != nil {
		return nil, err
	}
	return f.meals[canteen.ID], nil
}

func (f *fakeProvider) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func intptr(i int) *int { return &i }

func TestResolveCanteens(t *testing.T) {
	alteMensa := &openmensa.Canteen{ID: 4, Name: "Alte Mensa", City: "Dresden"}
	reichenbach := &openmensa.Canteen{ID: 6, Name: "Mensa Reichenbachstrasse", City: "Dresden"}

	t.Run("conflicting selectors fail without any provider call", func(t *testing.T) {
		provider := &fakeProvider{}
		_, err := ResolveCanteens(context.Background(), provider, Selection{
			ID:       intptr(4),
			Location: "Dresden",
		})
		if !errors.Is(err, ErrConflictingSelectors) {
			t.Fatalf("error = %v, want ErrConflictingSelectors", err)
		}
		if provider.calls != 0 {
			t.Errorf("provider calls = %d, want 0", provider.calls)
		}
	})

	t.Run("id override wins", func(t *testing.T) {
		provider := &fakeProvider{byID: map[int]*openmensa.Canteen{4: alteMensa}}
		canteens, err := ResolveCanteens(context.Background(), provider, Selection{
			ID:       intptr(4),
			Fallback: []int{6},
		})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if len(canteens) != 1 || canteens[0].ID != 4 {
			t.Errorf("canteens = %+v, want only id 4", canteens)
		}
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		provider := &fakeProvider{}
		_, err := ResolveCanteens(context.Background(), provider, Selection{ID: intptr(999)})
		if !errors.Is(err, openmensa.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("location override forwards the free text", func(t *testing.T) {
		provider := &fakeProvider{byLocation: map[string][]openmensa.Canteen{
			"Dresden": {*alteMensa, *reichenbach},
		}}
		canteens, err := ResolveCanteens(context.Background(), provider, Selection{Location: "Dresden"})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if len(canteens) != 2 {
			t.Errorf("len(canteens) = %d, want 2", len(canteens))
		}
	})

	t.Run("location with no match is empty, not an error", func(t *testing.T) {
		provider := &fakeProvider{}
		canteens, err := ResolveCanteens(context.Background(), provider, Selection{Location: "Atlantis"})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if len(canteens) != 0 {
			t.Errorf("canteens = %+v, want none", canteens)
		}
	})

	t.Run("fallback uses one batched call", func(t *testing.T) {
		provider := &fakeProvider{byID: map[int]*openmensa.Canteen{4: alteMensa, 6: reichenbach}}
		canteens, err := ResolveCanteens(context.Background(), provider, Selection{Fallback: []int{4, 6}})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if provider.calls != 1 {
			t.Errorf("provider calls = %d, want 1 batched call", provider.calls)
		}
		if len(canteens) != 2 || canteens[0].ID != 4 || canteens[1].ID != 6 {
			t.Errorf("canteens = %+v, want ids [4 6] in order", canteens)
		}
	})

	t.Run("provider failure surfaces as error", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("connection refused")}
		if _, err := ResolveCanteens(context.Background(), provider, Selection{Fallback: []int{4}}); err == nil {
			t.Fatal("error = nil, want transport error")
		}
	})
}
