package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wikipath/internal/adapters/telemetry/progrock"
	"go.trai.ch/wikipath/internal/core/domain"
	"go.trai.ch/wikipath/internal/core/ports"
	"go.trai.ch/wikipath/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRecorder_Phases(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	summary := progrock.NewSummary(log)
	recorder := progrock.NewRecorder(summary)
	ctx := context.Background()

	// parse and the visible load cache are reported; the internal one is not.
	log.EXPECT().Info(gomock.Any()).Times(1)
	log.EXPECT().Warn("load cache failed: graph cache is corrupt").Times(1)

	parseCtx, parse := recorder.Record(ctx, "parse")
	fromCtx, ok := ports.VertexFromContext(parseCtx)
	require.True(t, ok)
	assert.Same(t, parse, fromCtx)

	_, err := parse.Stdout().Write([]byte("raw output\n"))
	require.NoError(t, err)
	parse.Log(domain.LogLevelInfo, "parsed 10,000 pages")
	parse.Complete(nil)

	_, load := recorder.Record(ctx, "load cache", ports.WithInternal())
	load.Cached()
	load.Complete(nil)

	_, failed := recorder.Record(ctx, "load cache")
	assert.NotSame(t, load, failed, "repeated phases get their own vertex")
	failed.Complete(errors.New("graph cache is corrupt"))

	require.NoError(t, recorder.Close())

	phases := summary.Phases()
	require.Len(t, phases, 3)

	assert.Equal(t, "parse", phases[0].Name)
	assert.Equal(t, progrock.PhaseCompleted, phases[0].Status)
	assert.GreaterOrEqual(t, phases[0].Duration.Nanoseconds(), int64(0))

	assert.Equal(t, "load cache", phases[1].Name)
	assert.Equal(t, progrock.PhaseCached, phases[1].Status)
	assert.True(t, phases[1].Internal)

	assert.Equal(t, progrock.PhaseFailed, phases[2].Status)
	assert.Equal(t, "graph cache is corrupt", phases[2].Err)
	assert.False(t, phases[2].Internal)
}

func TestRecorder_UnfinishedPhaseIsNotReported(t *testing.T) {
	summary := progrock.NewSummary(nil)
	recorder := progrock.NewRecorder(summary)

	_, v := recorder.Record(context.Background(), "parse")
	_, _ = v.Stdout().Write([]byte("still going\n"))

	assert.Empty(t, summary.Phases())

	v.Complete(nil)
	v.Complete(nil)
	assert.Len(t, summary.Phases(), 1, "a vertex is reported once")
}
