package tracing

import (
	"context"
	"testing"

	"github.com/cloud-ru/mcp-roi-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestInitTracingWithoutEndpoint(t *testing.T) {
	cfg := &config.Config{OTELServiceName: "mcp-roi-test"}

	tracer, shutdown, err := InitTracing(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "breeding_cost")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
