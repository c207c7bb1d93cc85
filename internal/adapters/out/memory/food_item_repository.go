package memory

import (
	"context"
	"slices"
	"strings"

	"drivefood/internal/core/domain/model/menu"
)

type foodItemRepository struct {
	uow *UnitOfWork
}

func (r *foodItemRepository) Add(_ context.Context, item *menu.FoodItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	id := item.ID()
	if _, ok := r.find(id); ok {
		return duplicate("food item", id)
	}

	clone := cloneFoodItem(item)
	return r.uow.write(func(cs *changeSet) {
		cs.foodItems[id] = staged[*menu.FoodItem]{value: clone, isNew: true}
	})
}

func (r *foodItemRepository) GetMany(_ context.Context, ids []string) (map[string]*menu.FoodItem, error) {
	result := make(map[string]*menu.FoodItem, len(ids))
	for _, id := range ids {
		if f, ok := r.find(id); ok {
			result[id] = cloneFoodItem(f)
		}
	}
	return result, nil
}

func (r *foodItemRepository) ListByRestaurant(_ context.Context, restaurantID string) ([]*menu.FoodItem, error) {
	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*menu.FoodItem, 0)
	for _, f := range s.foodItems {
		if f.BelongsTo(restaurantID) {
			result = append(result, cloneFoodItem(f))
		}
	}
	slices.SortFunc(result, func(a, b *menu.FoodItem) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result, nil
}

func (r *foodItemRepository) find(id string) (*menu.FoodItem, bool) {
	if r.uow.tx != nil {
		if w, ok := r.uow.tx.foodItems[id]; ok {
			return w.value, true
		}
	}

	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.foodItems[id]
	return f, ok
}
