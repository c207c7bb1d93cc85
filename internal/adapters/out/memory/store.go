// Package memory provides in-process implementations of the persistence ports.
// It backs the service when no database is configured and is used by tests.
//
// Writes made inside a unit of work are staged and become visible to other units
// only on Commit; Rollback discards them. Repositories obtained without Begin write
// through immediately.
package memory

import (
	"errors"
	"sync"

	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/model/payment"
)

// ErrDuplicateKey is returned when adding an aggregate whose id already exists.
var ErrDuplicateKey = errors.New("memory: duplicate key")

// Store holds committed aggregates. Values are cloned on the way in and out so
// callers never share state with the store.
type Store struct {
	mu        sync.RWMutex
	orders    map[string]*order.Order
	intents   map[string]*payment.Intent
	foodItems map[string]*menu.FoodItem
}

func NewStore() *Store {
	return &Store{
		orders:    map[string]*order.Order{},
		intents:   map[string]*payment.Intent{},
		foodItems: map[string]*menu.FoodItem{},
	}
}

// Counts reports the number of stored orders, intents and food items.
func (s *Store) Counts() (orders, intents, foodItems int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders), len(s.intents), len(s.foodItems)
}

// changeSet is the staged state of one unit of work.
type changeSet struct {
	orders    map[string]staged[*order.Order]
	intents   map[string]staged[*payment.Intent]
	foodItems map[string]staged[*menu.FoodItem]
}

type staged[T any] struct {
	value T
	isNew bool
}

func newChangeSet() *changeSet {
	return &changeSet{
		orders:    map[string]staged[*order.Order]{},
		intents:   map[string]staged[*payment.Intent]{},
		foodItems: map[string]staged[*menu.FoodItem]{},
	}
}

// apply checks every staged write against committed state and then applies all of
// them, or none. The caller holds s.mu for writing.
func (s *Store) apply(cs *changeSet) error {
	if err := errors.Join(
		check(s.orders, cs.orders, "order"),
		check(s.intents, cs.intents, "payment intent"),
		check(s.foodItems, cs.foodItems, "food item"),
	); err != nil {
		return err
	}

	for id, w := range cs.orders {
		s.orders[id] = w.value
	}
	for id, w := range cs.intents {
		s.intents[id] = w.value
	}
	for id, w := range cs.foodItems {
		s.foodItems[id] = w.value
	}
	return nil
}

func check[T any](committed map[string]T, writes map[string]staged[T], name string) error {
	for id, w := range writes {
		_, exists := committed[id]
		if w.isNew && exists {
			return duplicate(name, id)
		}
		if !w.isNew && !exists {
			return notFound(name, id)
		}
	}
	return nil
}

func cloneOrder(o *order.Order) *order.Order {
	c := *o
	return &c
}

func cloneIntent(i *payment.Intent) *payment.Intent {
	c := *i
	return &c
}

func cloneFoodItem(f *menu.FoodItem) *menu.FoodItem {
	c := *f
	return &c
}
