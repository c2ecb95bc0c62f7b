package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), "padaria-api", "test", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTrimProtocol(t *testing.T) {
	assert.Equal(t, "collector:4318", trimProtocol("http://collector:4318"))
	assert.Equal(t, "collector:4318", trimProtocol("https://collector:4318"))
	assert.Equal(t, "collector:4318", trimProtocol("collector:4318"))
}
