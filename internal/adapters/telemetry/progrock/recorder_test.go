package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/adapters/telemetry/progrock"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
)

func TestRecorder_RecordsTasks(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "compile")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, got)

	_, err := vertex.Stdout().Write([]byte("building\n"))
	assert.NoError(t, err)
	vertex.Log(domain.LogLevelInfo, "info line")
	vertex.Log(domain.LogLevelError, "error line")
	vertex.Complete(nil)

	_, again := recorder.Record(context.Background(), "compile")
	again.Complete(errors.New("exit status 1"))

	assert.NoError(t, recorder.Close())
}

func TestRecorder_CloseTwice(t *testing.T) {
	recorder := progrock.New()

	require.NoError(t, recorder.Close())
	assert.NoError(t, recorder.Close())
}
