// Package app implements the application layer for bob-agent.
package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.trai.ch/bob-agent/internal/adapters/cas"    //nolint:depguard // Per-job adapters are built here
	"go.trai.ch/bob-agent/internal/adapters/fs"     //nolint:depguard // Per-job adapters are built here
	"go.trai.ch/bob-agent/internal/adapters/linear" //nolint:depguard // Per-job adapters are built here
	"go.trai.ch/bob-agent/internal/adapters/logger" //nolint:depguard // Per-job adapters are built here
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/bob-agent/internal/engine/environment"
	"go.trai.ch/bob-agent/internal/engine/job"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader     ports.AssignmentLoader
	executor   ports.Executor
	materials  ports.MaterialPreparer
	properties ports.PropertyGenerator
	walker     *fs.Walker
	hasher     *fs.Hasher
	telemetry  ports.Telemetry
	logger     ports.Logger

	output     io.Writer
	interrupts <-chan os.Signal
	sinkOpts   []linear.Option
}

// New creates a new App instance.
func New(
	loader ports.AssignmentLoader,
	executor ports.Executor,
	materials ports.MaterialPreparer,
	properties ports.PropertyGenerator,
	walker *fs.Walker,
	hasher *fs.Hasher,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		loader:     loader,
		executor:   executor,
		materials:  materials,
		properties: properties,
		walker:     walker,
		hasher:     hasher,
		telemetry:  telemetry,
		logger:     log,
		output:     os.Stdout,
	}
}

// WithOutput redirects the job console.
func (a *App) WithOutput(w io.Writer, opts ...linear.Option) *App {
	a.output = w
	a.sinkOpts = opts
	return a
}

// WithInterrupts replaces the OS signal subscription.
// This is primarily used for testing.
func (a *App) WithInterrupts(ch <-chan os.Signal) *App {
	a.interrupts = ch
	return a
}

// SetLogLevel changes the verbosity of the agent log.
func (a *App) SetLogLevel(level domain.LogLevel) {
	if l, ok := a.logger.(*logger.Logger); ok {
		l.SetLevel(level)
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// AssignmentPath is the job assignment file.
	AssignmentPath string
	// ArtifactDir is the root folder artifacts are published into.
	ArtifactDir string
	// ManifestPath is the file published artifacts are recorded in.
	ManifestPath string
	// ServerURL is exposed to tasks as BOB_SERVER_URL.
	ServerURL string
	// Environment is the agent-level context every job inherits.
	Environment []domain.EnvironmentVariable
}

// Run executes the job described by the assignment file.
//
// The first interrupt cancels the job: running tasks are stopped and the cancel tasks run.
// A second interrupt ignores the job, so it stops at its next checkpoint without a result.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	// 1. Load the assignment
	assignment, err := a.loader.Load(opts.AssignmentPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load assignment")
	}

	// 2. Initialize per-job adapters
	store, err := cas.NewStore(opts.ManifestPath)
	if err != nil {
		return zerr.Wrap(err, "failed to open manifest store")
	}

	log := a.jobLogger(assignment.ID)
	sink := linear.NewSink(a.output, log, a.sinkOpts...)
	publisher := fs.NewPublisher(opts.ArtifactDir, assignment.ID, store, a.walker, a.hasher, log)

	defer func() {
		if closeErr := a.telemetry.Close(); closeErr != nil {
			log.Error(zerr.Wrap(closeErr, "failed to close telemetry"))
		}
	}()

	work := job.New(assignment, job.Collaborators{
		Sink:       sink,
		Materials:  a.materials,
		Publisher:  publisher,
		Properties: a.properties,
		Executor:   a.executor,
		Logger:     log,
		Telemetry:  a.telemetry,
		Assembler:  environment.NewAssembler(opts.ServerURL),
	})
	inherited := domain.NewEnvironmentContext(opts.Environment...)

	interrupts, stop := a.subscribe()
	defer stop()

	// 3. Run the job and the interrupt watcher concurrently
	var result domain.JobResult
	done := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)

	// Job Routine
	g.Go(func() error {
		defer close(done)
		result = work.Run(ctx, inherited)
		return nil
	})

	// Interrupt Routine
	g.Go(func() error {
		cancelled := false
		for {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				if !cancelled {
					work.Cancel(inherited.Clone())
				}
				<-done
				return nil
			case sig := <-interrupts:
				if cancelled {
					log.Warn("received " + sig.String() + " again, ignoring job")
					sink.Ignore()
					continue
				}
				cancelled = true
				log.Warn("received " + sig.String() + ", cancelling job")
				work.Cancel(inherited.Clone())
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	switch result {
	case domain.ResultPassed:
		return nil
	case domain.ResultFailed:
		return zerr.With(domain.ErrJobFailed, "job", assignment.ID.String())
	default:
		return zerr.With(domain.ErrJobNotRun, "job", assignment.ID.String())
	}
}

func (a *App) jobLogger(id domain.JobIdentifier) ports.Logger {
	if l, ok := a.logger.(*logger.Logger); ok {
		return l.WithJob(id)
	}
	return a.logger
}

func (a *App) subscribe() (<-chan os.Signal, func()) {
	if a.interrupts != nil {
		return a.interrupts, func() {}
	}
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch, func() { signal.Stop(ch) }
}
