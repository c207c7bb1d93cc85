package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrConnectionExists is returned when registering an id twice.
var ErrConnectionExists = errors.New("realtime: connection already registered")

// Connection describes one connected observer.
type Connection struct {
	ID          string    `json:"id"`
	RemoteAddr  string    `json:"remoteAddr"`
	ConnectedAt time.Time `json:"connectedAt"`
}

type registered struct {
	conn  Connection
	close func() error
}

// Registry tracks connected observers. It only observes connection lifecycle and
// never touches hub traffic.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]registered
	logger *slog.Logger
}

type RegistryOption func(*Registry)

func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithRegistryMeter exports the connection count as an observable gauge.
func WithRegistryMeter(m metric.Meter) RegistryOption {
	return func(r *Registry) {
		if m == nil {
			return
		}
		_, _ = m.Int64ObservableGauge("realtime.registry.connections",
			metric.WithDescription("Currently connected observers"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(int64(r.Count()))
				return nil
			}),
		)
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		conns:  map[string]registered{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "connection-registry")
	return r
}

// Register adds conn. closeFn, when not nil, is used by CloseAll to terminate the
// channel at shutdown.
func (r *Registry) Register(conn Connection, closeFn func() error) error {
	if strings.TrimSpace(conn.ID) == "" {
		return errors.New("realtime: connection id is required")
	}

	r.mu.Lock()
	if _, ok := r.conns[conn.ID]; ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrConnectionExists, conn.ID)
	}
	r.conns[conn.ID] = registered{conn: conn, close: closeFn}
	r.mu.Unlock()

	r.logger.Info("a user connected", slog.String("connection", conn.ID), slog.String("remote", conn.RemoteAddr))
	return nil
}

// Unregister removes the connection and reports whether it was present.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	_, ok := r.conns[id]
	delete(r.conns, id)
	r.mu.Unlock()

	if ok {
		r.logger.Info("a user disconnected", slog.String("connection", id))
	}
	return ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Snapshot returns the connections ordered by connect time, then id.
func (r *Registry) Snapshot() []Connection {
	r.mu.RLock()
	list := make([]Connection, 0, len(r.conns))
	for _, reg := range r.conns {
		list = append(list, reg.conn)
	}
	r.mu.RUnlock()

	slices.SortFunc(list, func(a, b Connection) int {
		if c := a.ConnectedAt.Compare(b.ConnectedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return list
}

// CloseAll closes and forgets every registered connection.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	conns := r.conns
	r.conns = map[string]registered{}
	r.mu.Unlock()

	var closeErrs []error
	for id, reg := range conns {
		if reg.close == nil {
			continue
		}
		if err := reg.close(); err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("close %s: %w", id, err))
		}
	}
	return errors.Join(closeErrs...)
}
