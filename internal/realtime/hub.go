package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
)

// DefaultSubscriberBuffer is the queue length of a subscriber unless configured.
const DefaultSubscriberBuffer = 64

// ErrHubClosed is returned by Subscribe after Close.
var ErrHubClosed = errors.New("realtime: hub is closed")

// Hub fans messages out to every current subscriber. Publish never blocks: each
// subscriber has its own bounded queue and a full queue drops the message for that
// subscriber only.
//
// Example:
//
//	hub := realtime.NewHub(realtime.WithBuffer(64))
//	sub, _ := hub.Subscribe()
//	defer sub.Unsubscribe()
//	for msg := range sub.C() {
//	    // write msg to the observer
//	}
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool

	buffer  int
	logger  *slog.Logger
	metrics hubMetrics
}

type HubOption func(*Hub)

// WithBuffer sets the per-subscriber queue length. Values below 1 are ignored.
func WithBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func WithHubMeter(m metric.Meter) HubOption {
	return func(h *Hub) {
		h.metrics = newHubMetrics(m)
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:   map[uint64]*Subscription{},
		buffer: DefaultSubscriberBuffer,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "broadcast-hub")
	return h
}

// Subscription is one observer's queue.
type Subscription struct {
	id      uint64
	ch      chan Message
	hub     *Hub
	dropped atomic.Int64
	once    sync.Once
}

// C delivers messages in publish order. It is closed on Unsubscribe or hub Close.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Dropped counts messages this subscriber missed because its queue was full.
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// Unsubscribe removes the subscription and discards whatever is still queued.
// It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

// Subscribe registers a new observer. Only messages published afterwards are delivered.
func (h *Hub) Subscribe() (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	h.nextID++
	sub := &Subscription{
		id:  h.nextID,
		ch:  make(chan Message, h.buffer),
		hub: h,
	}
	h.subs[sub.id] = sub
	return sub, nil
}

// Publish offers msg to every subscriber without blocking and reports how many
// queues accepted it. Publishing on a closed hub does nothing.
func (h *Hub) Publish(ctx context.Context, msg Message) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0
	}

	delivered := 0
	for _, sub := range h.subs {
		select {
		case sub.ch <- msg:
			delivered++
		default:
			sub.dropped.Add(1)
			h.metrics.recordDropped(ctx)
			h.logger.WarnContext(ctx, "subscriber queue full, message dropped",
				slog.Uint64("subscriber", sub.id),
				slog.String("order.id", msg.Order.ID),
			)
		}
	}
	h.metrics.recordPublished(ctx, delivered)
	return delivered
}

// Subscribers reports the current number of subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription. Later Subscribe calls fail and Publish is a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		sub.once.Do(func() { close(sub.ch) })
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, sub.id)
	sub.once.Do(func() {
		close(sub.ch)
		for len(sub.ch) > 0 {
			<-sub.ch
		}
	})
}

type hubMetrics struct {
	published metric.Int64Counter
	dropped   metric.Int64Counter
}

func newHubMetrics(m metric.Meter) hubMetrics {
	if m == nil {
		return hubMetrics{}
	}
	published, _ := m.Int64Counter("realtime.hub.published", metric.WithDescription("Messages accepted by subscriber queues"))
	dropped, _ := m.Int64Counter("realtime.hub.dropped", metric.WithDescription("Messages dropped because a subscriber queue was full"))
	return hubMetrics{published: published, dropped: dropped}
}

func (m hubMetrics) recordPublished(ctx context.Context, n int) {
	if m.published != nil && n > 0 {
		m.published.Add(ctx, int64(n))
	}
}

func (m hubMetrics) recordDropped(ctx context.Context) {
	if m.dropped != nil {
		m.dropped.Add(ctx, 1)
	}
}
