package queries

import (
	"errors"
	"strings"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/guard"
)

var (
	ErrGetMenuQueryIsNotConstructed = errors.New(
		"GetMenuQuery must be created via NewGetMenuQuery constructor",
	)
)

// GetMenuQuery lists what a restaurant offers.
type GetMenuQuery struct {
	restaurantID string

	guard guard.ConstructorGuard
}

func NewGetMenuQuery(restaurantID string) (GetMenuQuery, error) {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return GetMenuQuery{}, errs.NewValueIsRequiredError("restaurantId")
	}
	return GetMenuQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMenuQuery) RestaurantID() string {
	return q.restaurantID
}

func (q GetMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuQueryIsNotConstructed)
}

type GetMenuQueryResponse struct {
	ID    string
	Name  string
	Price kernel.Money
	Tags  []string
}
