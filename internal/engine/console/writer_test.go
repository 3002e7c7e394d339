package console_test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports/mocks"
	"go.trai.ch/bob-agent/internal/engine/console"
	"go.uber.org/mock/gomock"
)

func TestLineWriter_SplitsLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockReportingSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().ConsumeLine(domain.TagPrep, "first").Return(nil),
		sink.EXPECT().ConsumeLine(domain.TagPrep, "second").Return(nil),
		sink.EXPECT().ConsumeLine(domain.TagPrep, "partial").Return(nil),
	)

	w := console.NewLineWriter(sink, domain.TagPrep)
	n, err := w.Write([]byte("first\r\nsec"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = w.Write([]byte("ond\npartial"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.NoError(t, w.Flush())
}

func TestLineWriter_SinkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockReportingSink(ctrl)
	sinkErr := errors.New("closed")

	sink.EXPECT().ConsumeLine(gomock.Any(), gomock.Any()).Return(sinkErr)

	_, err := console.NewLineWriter(sink, domain.TagNone).Write([]byte("x\n"))
	assert.ErrorIs(t, err, sinkErr)
}

func TestPair_SerializesWriters(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockReportingSink(ctrl)

	var inflight atomic.Int32
	sink.EXPECT().ConsumeLine(gomock.Any(), gomock.Any()).DoAndReturn(func(domain.ConsoleTag, string) error {
		assert.Equal(t, int32(1), inflight.Add(1))
		inflight.Add(-1)
		return nil
	}).Times(200)

	stdout, stderr := console.Pair(sink, domain.TagNone, domain.TagPrepErr)

	var wg sync.WaitGroup
	for _, w := range []*console.LineWriter{stdout, stderr} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				_, _ = fmt.Fprintf(w, "line %d\n", i)
			}
		}()
	}
	wg.Wait()
}
