package fooditemrepo

import (
	"context"

	"drivefood/internal/core/domain/model/menu"

	"gorm.io/gorm"
)

// GormFoodItemRepository implements ports.FoodItemRepository using GORM.
type GormFoodItemRepository struct {
	db *gorm.DB
}

func NewGormFoodItemRepository(db *gorm.DB) *GormFoodItemRepository {
	return &GormFoodItemRepository{db: db}
}

func (r *GormFoodItemRepository) Add(ctx context.Context, item *menu.FoodItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormFoodItemRepository) GetMany(ctx context.Context, ids []string) (map[string]*menu.FoodItem, error) {
	items := make(map[string]*menu.FoodItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	var dtos []FoodItemDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items[item.ID()] = item
	}

	return items, nil
}

func (r *GormFoodItemRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*menu.FoodItem, error) {
	var dtos []FoodItemDTO
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*menu.FoodItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
