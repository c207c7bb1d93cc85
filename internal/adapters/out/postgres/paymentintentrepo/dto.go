// Package paymentintentrepo persists payment intents in the payment_intents table.
package paymentintentrepo

import (
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentIntentDTO struct {
	ID            string          `gorm:"type:varchar(64);primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	Status        int             `gorm:"type:smallint;not null"`
	ReceiptID     string          `gorm:"type:varchar(128);not null;default:''"`
	ReceiptDigest string          `gorm:"type:char(64);not null;default:''"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (PaymentIntentDTO) TableName() string {
	return "payment_intents"
}

func fromDomain(intent *payment.Intent) PaymentIntentDTO {
	return PaymentIntentDTO{
		ID:            intent.ID(),
		OrderID:       intent.OrderID().Bytes(),
		Amount:        intent.Amount().Amount(),
		Currency:      intent.Amount().Currency(),
		Status:        int(intent.Status()),
		ReceiptID:     intent.ReceiptID(),
		ReceiptDigest: intent.ReceiptDigest(),
		CreatedAt:     intent.CreatedAt(),
		UpdatedAt:     intent.UpdatedAt(),
	}
}

func toDomain(dto PaymentIntentDTO) (*payment.Intent, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestoreIntent(
		dto.ID,
		orderID,
		amount,
		payment.IntentStatus(dto.Status),
		dto.ReceiptID,
		dto.ReceiptDigest,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
