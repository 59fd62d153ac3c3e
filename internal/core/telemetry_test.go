// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/config"
)

func TestStartTracingDisabled(t *testing.T) {
	tr, err := StartTracing(
		context.Background(),
		config.OtelConfig{Enabled: false, Endpoint: "localhost:4317"},
		config.AppConfig{},
	)
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestSampleRate(t *testing.T) {
	assert.InDelta(t, 0.5, sampleRate(0.5), 1e-9)
	assert.InDelta(t, 1.0, sampleRate(1), 1e-9)
	assert.InDelta(t, defaultSampleRate, sampleRate(0), 1e-9)
	assert.InDelta(t, defaultSampleRate, sampleRate(1.5), 1e-9)
}

func TestSpansWithoutProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test", "noop")
	defer span.End()

	assert.Empty(t, TraceIDFromContext(ctx))
	SetSpanError(ctx, errors.New("ignored"))
}

func TestOpenRedisIsOptional(t *testing.T) {
	r, err := OpenRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Nil(t, r.ClientOrNil())
	assert.NoError(t, r.Close())
}
