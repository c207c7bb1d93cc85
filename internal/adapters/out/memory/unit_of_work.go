package memory

import (
	"context"
	"errors"
	"fmt"

	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/errs"
)

// ErrNoTransaction mirrors the SQL adapter: Commit and Rollback need Begin first.
var ErrNoTransaction = errors.New("memory: no active transaction")

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes until Commit. It is not safe for concurrent use; each
// request creates its own.
type UnitOfWork struct {
	store *Store
	tx    *changeSet
}

// Begin starts staging. Calling it twice keeps the current change set.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.tx == nil {
		u.tx = newChangeSet()
	}
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}

	u.store.mu.Lock()
	err := u.store.apply(u.tx)
	u.store.mu.Unlock()

	u.tx = nil
	return err
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.tx = nil
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) PaymentIntentRepository() ports.PaymentIntentRepository {
	return &intentRepository{uow: u}
}

func (u *UnitOfWork) FoodItemRepository() ports.FoodItemRepository {
	return &foodItemRepository{uow: u}
}

// write stages w in the current change set or, outside a transaction, commits it
// on its own.
func (u *UnitOfWork) write(stage func(cs *changeSet)) error {
	if u.tx != nil {
		stage(u.tx)
		return nil
	}

	cs := newChangeSet()
	stage(cs)

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return u.store.apply(cs)
}

func notFound(name string, id string) error {
	return errs.NewObjectNotFoundError(name, id)
}

func duplicate(name string, id string) error {
	return fmt.Errorf("%w: %s %s", ErrDuplicateKey, name, id)
}
