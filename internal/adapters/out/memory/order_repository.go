package memory

import (
	"context"
	"slices"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/order"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	if _, ok := r.find(id); ok {
		return duplicate("order", id)
	}

	clone := cloneOrder(aggregate)
	return r.uow.write(func(cs *changeSet) {
		cs.orders[id] = staged[*order.Order]{value: clone, isNew: true}
	})
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	existing, ok := r.stagedWrite(id)
	if _, found := r.find(id); !found {
		return notFound("order", id)
	}

	clone := cloneOrder(aggregate)
	return r.uow.write(func(cs *changeSet) {
		cs.orders[id] = staged[*order.Order]{value: clone, isNew: ok && existing.isNew}
	})
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o, ok := r.find(id.String())
	if !ok {
		return nil, notFound("order", id.String())
	}
	return cloneOrder(o), nil
}

func (r *orderRepository) GetAllPaymentPendingBefore(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*order.Order, 0)
	for _, o := range s.orders {
		if o.Status() == order.PaymentPending && o.UpdatedAt().Before(cutoff) {
			result = append(result, cloneOrder(o))
		}
	}
	slices.SortFunc(result, func(a, b *order.Order) int {
		return a.UpdatedAt().Compare(b.UpdatedAt())
	})
	return result, nil
}

func (r *orderRepository) stagedWrite(id string) (staged[*order.Order], bool) {
	if r.uow.tx == nil {
		return staged[*order.Order]{}, false
	}
	w, ok := r.uow.tx.orders[id]
	return w, ok
}

// find looks at staged writes first, then committed state.
func (r *orderRepository) find(id string) (*order.Order, bool) {
	if w, ok := r.stagedWrite(id); ok {
		return w.value, true
	}

	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}
