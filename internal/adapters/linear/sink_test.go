package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/adapters/linear"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 1, 250_000_000, time.UTC)
}

func newSink(t *testing.T, buf *bytes.Buffer) (*linear.Sink, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	sink := linear.NewSink(buf, mockLogger, linear.WithClock(fixedClock), linear.WithProfile(termenv.Ascii))
	return sink, mockLogger
}

func TestSink_ConsumeLine(t *testing.T) {
	var buf bytes.Buffer
	sink, _ := newSink(t, &buf)

	require.NoError(t, sink.ConsumeLine(domain.TagNone, "go test ./..."))
	require.NoError(t, sink.ConsumeLine(domain.TagPrep, "Start to update materials."))

	assert.Equal(t,
		"09:30:01.250 go test ./...\n"+
			"09:30:01.250 [prep] Start to update materials.\n",
		buf.String())
}

func TestSink_ReportAction(t *testing.T) {
	var buf bytes.Buffer
	sink, _ := newSink(t, &buf)

	require.NoError(t, sink.ReportAction(domain.TagPublish, "Start to upload"))

	assert.Equal(t, "09:30:01.250 [publish] Start to upload\n", buf.String())
}

func TestSink_ReportStatus(t *testing.T) {
	var buf bytes.Buffer
	sink, mockLogger := newSink(t, &buf)

	mockLogger.EXPECT().Info("job is Building")
	mockLogger.EXPECT().Info("job is Completed")

	require.NoError(t, sink.ReportStatus(domain.PhaseBuilding))
	assert.False(t, sink.Completed())

	require.NoError(t, sink.ReportStatus(domain.PhaseCompleted))
	assert.True(t, sink.Completed())
	assert.Empty(t, buf.String())
}

func TestSink_ReportCompleted(t *testing.T) {
	tests := []struct {
		name   string
		result domain.JobResult
		want   string
	}{
		{"Passed", domain.ResultPassed, "09:30:01.250 [job_pass] Job completed: passed\n"},
		{"Failed", domain.ResultFailed, "09:30:01.250 [job_fail] Job completed: failed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink, mockLogger := newSink(t, &buf)

			mockLogger.EXPECT().Info("build finished: " + tt.result.String())
			mockLogger.EXPECT().Info("job completed: " + tt.result.String())

			require.NoError(t, sink.ReportCompleting(tt.result))
			require.NoError(t, sink.ReportCompleted(tt.result))

			assert.Equal(t, tt.want, buf.String())
			assert.True(t, sink.Completed())
		})
	}
}

func TestSink_ReportErrorMessage(t *testing.T) {
	var buf bytes.Buffer
	sink, mockLogger := newSink(t, &buf)

	cause := errors.New("disk full")
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, cause)
	})

	require.NoError(t, sink.ReportErrorMessage("Failed to publish artifacts", cause))
	assert.Equal(t, "09:30:01.250 Failed to publish artifacts\n", buf.String())
}

func TestSink_Ignore(t *testing.T) {
	sink, mockLogger := newSink(t, &bytes.Buffer{})

	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	assert.False(t, sink.IsIgnored())
	sink.Ignore()
	sink.Ignore()
	assert.True(t, sink.IsIgnored())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestSink_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := linear.NewSink(failingWriter{}, mocks.NewMockLogger(ctrl), linear.WithProfile(termenv.Ascii))

	err := sink.ConsumeLine(domain.TagNone, "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write console line")
}
