// Package commands contains business operations that modify order state.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and, after a successful commit, an order broadcast.
package commands

import (
	"context"

	"drivefood/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentIntentRepoFactory provides access to the intent repository within a transaction.
	PaymentIntentRepoFactory interface {
		PaymentIntentRepository() ports.PaymentIntentRepository
	}

	// FoodItemRepoFactory provides access to the catalog within a transaction.
	FoodItemRepoFactory interface {
		FoodItemRepository() ports.FoodItemRepository
	}

	// OrderUoW manages transactions for order creation, which reads the catalog
	// and writes the order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		FoodItemRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW manages transactions that change an order together with its
	// payment intents.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   intentRepo := uow.PaymentIntentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentIntentRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}
)
