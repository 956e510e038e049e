package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestSetup_EmptyEndpoint(t *testing.T) {
	t.Parallel()

	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "", "rsc")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))

	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestNewResource(t *testing.T) {
	t.Parallel()

	res := newResource("rsc-test")
	v, ok := res.Set().Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "rsc-test", v.AsString())
}
