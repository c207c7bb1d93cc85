package paymentintentrepo

import (
	"context"
	"errors"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentIntentRepository implements ports.PaymentIntentRepository using GORM.
type GormPaymentIntentRepository struct {
	db *gorm.DB
}

func NewGormPaymentIntentRepository(db *gorm.DB) *GormPaymentIntentRepository {
	return &GormPaymentIntentRepository{db: db}
}

func (r *GormPaymentIntentRepository) Add(ctx context.Context, intent *payment.Intent) error {
	if err := intent.Validate(); err != nil {
		return err
	}

	dto := fromDomain(intent)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the settlement columns.
func (r *GormPaymentIntentRepository) Update(ctx context.Context, intent *payment.Intent) error {
	if err := intent.Validate(); err != nil {
		return err
	}

	dto := fromDomain(intent)
	result := r.db.WithContext(ctx).Model(&PaymentIntentDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":         dto.Status,
		"receipt_id":     dto.ReceiptID,
		"receipt_digest": dto.ReceiptDigest,
		"updated_at":     dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment intent", intent.ID())
	}

	return nil
}

func (r *GormPaymentIntentRepository) Get(ctx context.Context, id string) (*payment.Intent, error) {
	var dto PaymentIntentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment intent", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPaymentIntentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Intent, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentIntentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	intents := make([]*payment.Intent, 0, len(dtos))
	for _, dto := range dtos {
		intent, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}

	return intents, nil
}
