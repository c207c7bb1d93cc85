// Package orderrepo maps order aggregates onto the orders and order_items tables.
package orderrepo

import (
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Line items live in order_items.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   string          `gorm:"type:varchar(255);not null"`
	RestaurantID string          `gorm:"type:varchar(255);not null;index"`
	Items        []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	Status       int             `gorm:"type:smallint;not null;index:idx_orders_status_updated"`
	PaymentRef   string          `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime:false;index:idx_orders_status_updated"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order, keyed by its position.
type OrderItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"type:smallint;primaryKey"`
	FoodItemID string          `gorm:"type:varchar(255);not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"type:int;not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()
	lines := aggregate.Items()
	items := make([]OrderItemDTO, 0, len(lines))
	for i, line := range lines {
		items = append(items, OrderItemDTO{
			OrderID:    id,
			Position:   i,
			FoodItemID: line.FoodItemID(),
			Name:       line.Name(),
			Quantity:   line.Quantity(),
			UnitPrice:  line.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:           id,
		CustomerID:   aggregate.CustomerID(),
		RestaurantID: aggregate.RestaurantID(),
		Items:        items,
		Total:        aggregate.Total().Amount(),
		Currency:     aggregate.Total().Currency(),
		Status:       int(aggregate.Status()),
		PaymentRef:   aggregate.PaymentRef(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so a row whose total no longer
// matches its lines is rejected.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		price, priceErr := kernel.NewMoney(item.UnitPrice, dto.Currency)
		if priceErr != nil {
			return nil, priceErr
		}
		line, lineErr := order.NewLineItem(item.FoodItemID, item.Name, item.Quantity, price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	total, err := kernel.NewMoney(dto.Total, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerID,
		dto.RestaurantID,
		lines,
		total,
		order.Status(dto.Status),
		dto.PaymentRef,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
