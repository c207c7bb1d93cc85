package postgres

import (
	"drivefood/internal/adapters/out/postgres/fooditemrepo"
	"drivefood/internal/adapters/out/postgres/orderrepo"
	"drivefood/internal/adapters/out/postgres/paymentintentrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the order store needs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&paymentintentrepo.PaymentIntentDTO{},
		&fooditemrepo.FoodItemDTO{},
	)
}
