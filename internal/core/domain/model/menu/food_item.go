package menu

import (
	"errors"
	"slices"
	"strings"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/errs"
)

var ErrFoodItemIsNotConstructed = errors.New("FoodItem must be created via NewFoodItem constructor")

// FoodItem is a priced dish offered by one restaurant.
type FoodItem struct {
	id           string
	restaurantID string
	name         string
	price        kernel.Money
	tags         []string

	isConstructed bool
}

// NewFoodItem validates the item. Tags are trimmed, lower-cased, de-duplicated and sorted.
func NewFoodItem(id, restaurantID, name string, price kernel.Money, tags []string) (*FoodItem, error) {
	f := &FoodItem{
		id:            strings.TrimSpace(id),
		restaurantID:  strings.TrimSpace(restaurantID),
		name:          strings.TrimSpace(name),
		tags:          normalizeTags(tags),
		isConstructed: true,
	}

	var idErr, restaurantErr, nameErr error
	if f.id == "" {
		idErr = errs.NewValueIsRequiredError("foodItemId")
	}
	if f.restaurantID == "" {
		restaurantErr = errs.NewValueIsRequiredError("restaurantId")
	}
	if f.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(idErr, restaurantErr, nameErr, price.Validate()); err != nil {
		return nil, err
	}

	f.price = price
	return f, nil
}

func (f *FoodItem) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFoodItemIsNotConstructed
	}
	return nil
}

func (f *FoodItem) ID() string {
	return f.id
}

func (f *FoodItem) RestaurantID() string {
	return f.restaurantID
}

func (f *FoodItem) Name() string {
	return f.name
}

func (f *FoodItem) Price() kernel.Money {
	return f.price
}

func (f *FoodItem) Tags() []string {
	return slices.Clone(f.tags)
}

// BelongsTo reports whether the item is served by restaurantID.
func (f *FoodItem) BelongsTo(restaurantID string) bool {
	return f.restaurantID == restaurantID
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
