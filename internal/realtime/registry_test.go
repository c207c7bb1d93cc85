package realtime_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"drivefood/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndUnregister(t *testing.T) {
	r := realtime.NewRegistry()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Register(realtime.Connection{ID: "b", ConnectedAt: base}, nil))
	require.NoError(t, r.Register(realtime.Connection{ID: "a", ConnectedAt: base}, nil))
	require.NoError(t, r.Register(realtime.Connection{ID: "c", ConnectedAt: base.Add(-time.Second)}, nil))

	err := r.Register(realtime.Connection{ID: "a"}, nil)
	require.ErrorIs(t, err, realtime.ErrConnectionExists)
	require.Error(t, r.Register(realtime.Connection{ID: " "}, nil))

	assert.Equal(t, 3, r.Count())
	ids := []string{}
	for _, c := range r.Snapshot() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	assert.True(t, r.Unregister("a"))
	assert.False(t, r.Unregister("a"))
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	r := realtime.NewRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprint("conn-", i)
			assert.NoError(t, r.Register(realtime.Connection{ID: id, ConnectedAt: time.Now()}, nil))
			_ = r.Snapshot()
			if i%2 == 0 {
				r.Unregister(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, r.Count())
}

func TestRegistry_CloseAll(t *testing.T) {
	r := realtime.NewRegistry()
	closed := 0
	require.NoError(t, r.Register(realtime.Connection{ID: "a"}, func() error { closed++; return nil }))
	require.NoError(t, r.Register(realtime.Connection{ID: "b"}, func() error { closed++; return errors.New("already gone") }))
	require.NoError(t, r.Register(realtime.Connection{ID: "c"}, nil))

	err := r.CloseAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already gone")
	assert.Equal(t, 2, closed)
	assert.Zero(t, r.Count())
}
