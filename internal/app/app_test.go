package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/adapters/fs"
	"go.trai.ch/bob-agent/internal/adapters/linear"
	"go.trai.ch/bob-agent/internal/adapters/telemetry"
	"go.trai.ch/bob-agent/internal/app"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type harness struct {
	loader     *mocks.MockAssignmentLoader
	executor   *mocks.MockExecutor
	materials  *mocks.MockMaterialPreparer
	properties *mocks.MockPropertyGenerator
	output     *bytes.Buffer
	interrupts chan os.Signal
	opts       app.RunOptions
	app        *app.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	h := &harness{
		loader:     mocks.NewMockAssignmentLoader(ctrl),
		executor:   mocks.NewMockExecutor(ctrl),
		materials:  mocks.NewMockMaterialPreparer(ctrl),
		properties: mocks.NewMockPropertyGenerator(ctrl),
		output:     &bytes.Buffer{},
		interrupts: make(chan os.Signal, 2),
		opts: app.RunOptions{
			AssignmentPath: filepath.Join(dir, "job.yaml"),
			ArtifactDir:    filepath.Join(dir, "artifacts"),
			ManifestPath:   filepath.Join(dir, "manifest.json"),
			ServerURL:      "https://bob.example.com",
		},
	}

	walker := fs.NewWalker()
	h.app = app.New(h.loader, h.executor, h.materials, h.properties,
		walker, fs.NewHasher(walker), telemetry.NewNoOp(), mockLogger).
		WithOutput(h.output, linear.WithProfile(termenv.Ascii)).
		WithInterrupts(h.interrupts)
	return h
}

func assignment(t *testing.T) *domain.JobAssignment {
	t.Helper()
	return &domain.JobAssignment{
		ID:               domain.JobIdentifier{Pipeline: "api", Counter: 3, Stage: "build", Job: "compile"},
		WorkingDirectory: t.TempDir(),
		Tasks: []domain.Task{
			{Name: domain.NewInternedString("compile"), Command: []string{"make"}, RunIf: domain.RunIfPassed},
		},
	}
}

func TestApp_Run_Passed(t *testing.T) {
	h := newHarness(t)
	a := assignment(t)

	h.loader.EXPECT().Load(h.opts.AssignmentPath).Return(a, nil)
	h.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Task, env []string, stdout, _ io.Writer) error {
			assert.Contains(t, env, "BOB_SERVER_URL=https://bob.example.com")
			assert.Contains(t, env, "BOB_JOB_NAME=compile")
			_, err := io.WriteString(stdout, "built\n")
			return err
		})

	err := h.app.Run(context.Background(), h.opts)
	require.NoError(t, err)

	out := h.output.String()
	assert.Contains(t, out, "Start to build")
	assert.Contains(t, out, "built")
	assert.Contains(t, out, "[job_pass] Job completed: passed")
}

func TestApp_Run_Failed(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load(gomock.Any()).Return(assignment(t), nil)
	h.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("exit status 2"))

	err := h.app.Run(context.Background(), h.opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrJobFailed)
	assert.Contains(t, h.output.String(), "[job_fail] Job completed: failed")
}

func TestApp_Run_PublishesArtifacts(t *testing.T) {
	h := newHarness(t)
	a := assignment(t)
	a.Artifacts = []domain.ArtifactPlan{{Source: "out/app", Dest: "bin"}}

	h.loader.EXPECT().Load(gomock.Any()).Return(a, nil)
	h.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Task, []string, io.Writer, io.Writer) error {
			path := filepath.Join(a.WorkingDirectory, "out", "app")
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return err
			}
			return os.WriteFile(path, []byte("binary"), 0o600)
		})

	require.NoError(t, h.app.Run(context.Background(), h.opts))

	assert.FileExists(t, filepath.Join(h.opts.ArtifactDir, "api", "3", "build", "compile", "bin", "app"))
	assert.FileExists(t, h.opts.ManifestPath)
}

func TestApp_Run_LoaderError(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrConfigReadFailed)

	err := h.app.Run(context.Background(), h.opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.Empty(t, h.output.String())
}

func TestApp_Run_InterruptCancelsJob(t *testing.T) {
	h := newHarness(t)
	a := assignment(t)
	a.CancelTasks = []domain.Task{{Name: domain.NewInternedString("cleanup"), Command: []string{"make", "clean"}}}

	started := make(chan struct{})
	var mu sync.Mutex
	var ran []string

	h.loader.EXPECT().Load(gomock.Any()).Return(a, nil)
	h.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, task *domain.Task, _ []string, _, _ io.Writer) error {
			mu.Lock()
			ran = append(ran, task.Name.String())
			mu.Unlock()
			if task.Name.String() == "cleanup" {
				return nil
			}
			close(started)
			<-ctx.Done()
			return context.Cause(ctx)
		}).
		Times(2)

	go func() {
		<-started
		h.interrupts <- syscall.SIGTERM
	}()

	err := h.app.Run(context.Background(), h.opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrJobFailed)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"compile", "cleanup"}, ran)
	assert.Contains(t, h.output.String(), "Job completed: failed")
}
