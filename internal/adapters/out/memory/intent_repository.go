package memory

import (
	"context"
	"slices"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
)

type intentRepository struct {
	uow *UnitOfWork
}

func (r *intentRepository) Add(_ context.Context, intent *payment.Intent) error {
	if err := intent.Validate(); err != nil {
		return err
	}

	id := intent.ID()
	if _, ok := r.find(id); ok {
		return duplicate("payment intent", id)
	}

	clone := cloneIntent(intent)
	return r.uow.write(func(cs *changeSet) {
		cs.intents[id] = staged[*payment.Intent]{value: clone, isNew: true}
	})
}

func (r *intentRepository) Update(_ context.Context, intent *payment.Intent) error {
	if err := intent.Validate(); err != nil {
		return err
	}

	id := intent.ID()
	existing, ok := r.stagedWrite(id)
	if _, found := r.find(id); !found {
		return notFound("payment intent", id)
	}

	clone := cloneIntent(intent)
	return r.uow.write(func(cs *changeSet) {
		cs.intents[id] = staged[*payment.Intent]{value: clone, isNew: ok && existing.isNew}
	})
}

func (r *intentRepository) Get(_ context.Context, id string) (*payment.Intent, error) {
	i, ok := r.find(id)
	if !ok {
		return nil, notFound("payment intent", id)
	}
	return cloneIntent(i), nil
}

func (r *intentRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*payment.Intent, error) {
	byID := map[string]*payment.Intent{}

	s := r.uow.store
	s.mu.RLock()
	for id, i := range s.intents {
		if i.OrderID().IsEqual(orderID) {
			byID[id] = i
		}
	}
	s.mu.RUnlock()

	if r.uow.tx != nil {
		for id, w := range r.uow.tx.intents {
			if w.value.OrderID().IsEqual(orderID) {
				byID[id] = w.value
			}
		}
	}

	result := make([]*payment.Intent, 0, len(byID))
	for _, i := range byID {
		result = append(result, cloneIntent(i))
	}
	slices.SortFunc(result, func(a, b *payment.Intent) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return result, nil
}

func (r *intentRepository) stagedWrite(id string) (staged[*payment.Intent], bool) {
	if r.uow.tx == nil {
		return staged[*payment.Intent]{}, false
	}
	w, ok := r.uow.tx.intents[id]
	return w, ok
}

func (r *intentRepository) find(id string) (*payment.Intent, bool) {
	if w, ok := r.stagedWrite(id); ok {
		return w.value, true
	}

	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.intents[id]
	return i, ok
}
