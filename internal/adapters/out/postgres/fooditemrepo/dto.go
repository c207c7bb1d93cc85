// Package fooditemrepo persists the restaurant catalog in the food_items table.
package fooditemrepo

import (
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/menu"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type FoodItemDTO struct {
	ID           string          `gorm:"type:varchar(255);primaryKey"`
	RestaurantID string          `gorm:"type:varchar(255);not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	TagNames     pq.StringArray  `gorm:"column:tag_names;type:text[]"`
}

func (FoodItemDTO) TableName() string {
	return "food_items"
}

func fromDomain(item *menu.FoodItem) FoodItemDTO {
	return FoodItemDTO{
		ID:           item.ID(),
		RestaurantID: item.RestaurantID(),
		Name:         item.Name(),
		Price:        item.Price().Amount(),
		Currency:     item.Price().Currency(),
		TagNames:     pq.StringArray(item.Tags()),
	}
}

func toDomain(dto FoodItemDTO) (*menu.FoodItem, error) {
	price, err := kernel.NewMoney(dto.Price, dto.Currency)
	if err != nil {
		return nil, err
	}
	return menu.NewFoodItem(dto.ID, dto.RestaurantID, dto.Name, price, dto.TagNames)
}
