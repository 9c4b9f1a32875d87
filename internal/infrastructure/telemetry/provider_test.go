package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledProviderIsNoop(t *testing.T) {
	var buf bytes.Buffer
	tracer, shutdown, err := NewProvider(context.Background(), Options{Output: &buf})
	require.NoError(t, err)

	_, span := tracer.Start(context.Background(), "docker")
	span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, shutdown(context.Background()))
	assert.Zero(t, buf.Len())
}

func TestEnabledProviderWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tracer, shutdown, err := NewProvider(context.Background(), Options{
		Enabled: true, Output: &buf, ServiceName: "ecocheck", ServiceVersion: "test",
	})
	require.NoError(t, err)

	_, span := tracer.Start(context.Background(), "check.database")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "check.database")
	assert.Contains(t, buf.String(), "ecocheck")
}
