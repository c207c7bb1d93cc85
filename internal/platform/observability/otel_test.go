package observability_test

import (
	"testing"

	"drivefood/internal/platform/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	instruments, shutdown, err := observability.Init(t.Context(), "drivefood-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(t.Context()) })

	assert.NotNil(t, instruments.Logger)
	assert.NotNil(t, instruments.Reader)
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestNilInstrumentsFallBack(t *testing.T) {
	var instruments *observability.Instruments

	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestDiscard(t *testing.T) {
	instruments := observability.Discard()

	instruments.Logger.Info("dropped")
	assert.NotNil(t, instruments.Tracer("test"))
}
