// Package job drives a single job assignment from preparation to the final report.
package job

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/bob-agent/internal/engine/chain"
	"go.trai.ch/bob-agent/internal/engine/console"
	"go.trai.ch/bob-agent/internal/engine/environment"
	"go.trai.ch/bob-agent/internal/engine/workdir"
	"go.trai.ch/zerr"
)

const startedLayout = "2006-01-02 15:04:05 MST"

// errJobIgnored ends the phase sequence when a checkpoint observes cancellation.
var errJobIgnored = zerr.New("job ignored")

// Collaborators are the capabilities a Work depends on.
type Collaborators struct {
	Sink       ports.ReportingSink
	Materials  ports.MaterialPreparer
	Publisher  ports.ArtifactPublisher
	Properties ports.PropertyGenerator
	Executor   ports.Executor
	Logger     ports.Logger
	Telemetry  ports.Telemetry
	Assembler  *environment.Assembler
}

// Option configures a Work.
type Option func(*Work)

// WithClock replaces the clock used for the start timestamp.
func WithClock(now func() time.Time) Option {
	return func(w *Work) {
		w.now = now
	}
}

// Work executes one job assignment.
//
// Run belongs to the job goroutine and owns the sink. Cancel may be called from any goroutine.
type Work struct {
	assignment *domain.JobAssignment
	sink       ports.ReportingSink
	materials  ports.MaterialPreparer
	publisher  ports.ArtifactPublisher
	properties ports.PropertyGenerator
	logger     ports.Logger
	assembler  *environment.Assembler
	signal     *domain.CancellationSignal
	chain      *chain.Chain
	now        func() time.Time

	// jobEnv is the assembled job environment, published once preparation assembled it.
	jobEnv atomic.Pointer[domain.EnvironmentContext]
}

// New creates a Work for the assignment.
func New(assignment *domain.JobAssignment, c Collaborators, opts ...Option) *Work {
	signal := domain.NewCancellationSignal()
	w := &Work{
		assignment: assignment,
		sink:       c.Sink,
		materials:  c.Materials,
		publisher:  c.Publisher,
		properties: c.Properties,
		logger:     c.Logger,
		assembler:  c.Assembler,
		signal:     signal,
		chain:      chain.New(assignment.Tasks, assignment.CancelTasks, c.Executor, c.Logger, c.Telemetry, signal),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Cancel stops the job cooperatively and starts the cancel tasks once.
// The cancel tasks see env overlaid with the job environment, so they get the same
// job identity, assignment and material variables as the build tasks.
func (w *Work) Cancel(env *domain.EnvironmentContext) {
	w.logger.Info("cancelling job " + w.assignment.ID.String())

	jobEnv := w.jobEnv.Load()
	if jobEnv == nil {
		jobEnv = w.assembler.Assemble(nil, w.assignment)
	}
	merged := domain.NewEnvironmentContext()
	merged.AddAll(env)
	merged.AddAll(jobEnv)
	w.chain.Cancel(merged)
}

// Run executes the job and reports its outcome to the sink. It always returns normally.
//
// The returned result is ResultNotRun when the job was ignored, abandoned, or cancelled before
// any task ran.
func (w *Work) Run(ctx context.Context, env *domain.EnvironmentContext) domain.JobResult {
	if env == nil {
		env = domain.NewEnvironmentContext()
	}
	// Preparation output may already echo assignment secrets.
	sink := environment.NewRedactingSink(w.sink, w.assembler.Assemble(env, w.assignment))

	result, err := w.boundary(ctx, env, sink)
	switch {
	case err == nil:
	case errors.Is(err, errJobIgnored):
		w.reportIgnored(sink)
		return domain.ResultNotRun
	case errors.Is(err, domain.ErrIdentityChanged):
		w.logger.Error(zerr.With(zerr.Wrap(err, "abandoning job"), "job", w.assignment.ID.String()))
		return domain.ResultNotRun
	case errors.Is(err, domain.ErrWorkingDirectory):
		w.logger.Error(zerr.Wrap(err, "job setup aborted"))
		w.reportFailure(sink, err)
		result = domain.ResultFailed
	default:
		w.logger.Error(zerr.Wrap(err, "job failed"))
		w.reportFailure(sink, err)
		result = domain.ResultFailed
	}

	w.reportCompletion(sink, result)
	return result
}

// boundary runs the phases and converts a collaborator panic into an error.
func (w *Work) boundary(
	ctx context.Context,
	env *domain.EnvironmentContext,
	sink *environment.RedactingSink,
) (result domain.JobResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.ResultFailed
			err = zerr.With(zerr.Wrap(domain.ErrCollaboratorPanic, "job aborted"), "panic", fmt.Sprint(r))
		}
	}()
	return w.doWork(ctx, env, sink)
}

func (w *Work) doWork(
	ctx context.Context,
	env *domain.EnvironmentContext,
	sink *environment.RedactingSink,
) (domain.JobResult, error) {
	if w.ignored(sink) {
		return domain.ResultNotRun, errJobIgnored
	}

	started := "Job Started: " + w.now().Format(startedLayout)
	if err := sink.ConsumeLine(domain.TagNone, started); err != nil {
		return domain.ResultFailed, zerr.Wrap(err, "failed to report job start")
	}

	if err := w.prepare(ctx, sink); err != nil {
		return domain.ResultFailed, err
	}
	if w.ignored(sink) {
		return domain.ResultNotRun, errJobIgnored
	}

	jobEnv, err := w.setupEnvironment(env, sink)
	if err != nil {
		return domain.ResultFailed, err
	}
	if w.ignored(sink) {
		return domain.ResultNotRun, errJobIgnored
	}

	result, err := w.build(ctx, jobEnv, sink)
	if err != nil {
		return domain.ResultFailed, err
	}

	if w.ignored(sink) {
		return result, nil
	}
	return w.complete(ctx, result, sink)
}

func (w *Work) ignored(sink ports.ReportingSink) bool {
	return w.signal.IsSet() || sink.IsIgnored()
}

func (w *Work) prepare(ctx context.Context, sink ports.ReportingSink) error {
	if err := sink.ReportAction(domain.TagPrep, "Start to prepare"); err != nil {
		return zerr.Wrap(err, "failed to report action")
	}
	if err := sink.ReportStatus(domain.PhasePreparing); err != nil {
		return zerr.Wrap(err, "failed to report status")
	}

	if err := workdir.Prepare(w.assignment.WorkingDirectory, w.assignment.CleanWorkingDirectory, sink); err != nil {
		return err
	}
	return w.fetchMaterials(ctx, sink)
}

func (w *Work) fetchMaterials(ctx context.Context, sink ports.ReportingSink) error {
	a := w.assignment
	if !a.FetchMaterials {
		return sink.ConsumeLine(domain.TagPrep, "Skipping material update since stage is configured not to fetch materials")
	}

	out := console.NewLineWriter(sink, domain.TagPrep)
	err := w.updateMaterials(ctx, out, sink)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		_ = sink.ConsumeLine(domain.TagPrepErr, err.Error())
		return zerr.Wrap(err, "failed to prepare materials")
	}
	return nil
}

func (w *Work) updateMaterials(ctx context.Context, out *console.LineWriter, sink ports.ReportingSink) error {
	a := w.assignment
	if err := w.materials.CleanUp(ctx, a.WorkingDirectory, a.Materials, out); err != nil {
		return err
	}
	if err := sink.ConsumeLine(domain.TagPrep, "Start to update materials."); err != nil {
		return err
	}
	for _, rev := range a.Materials {
		agent, err := w.materials.CreateAgent(rev, a.WorkingDirectory, out)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create material agent"), "material", rev.Name)
		}
		if err := agent.Prepare(ctx); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to update material"), "material", rev.Name)
		}
	}
	return nil
}

// setupEnvironment assembles the job environment and dumps it through the redacting sink.
func (w *Work) setupEnvironment(
	inherited *domain.EnvironmentContext,
	sink *environment.RedactingSink,
) (*domain.EnvironmentContext, error) {
	env := w.assembler.Assemble(inherited, w.assignment)
	sink.Use(env)
	w.jobEnv.Store(env)

	for _, line := range env.Report(w.assembler.ProcessNames()) {
		if err := sink.ConsumeLine(domain.TagNone, line); err != nil {
			return nil, zerr.Wrap(err, "failed to report environment")
		}
	}
	return env, nil
}

func (w *Work) build(ctx context.Context, env *domain.EnvironmentContext, sink ports.ReportingSink) (domain.JobResult, error) {
	if err := sink.ReportStatus(domain.PhaseBuilding); err != nil {
		return domain.ResultFailed, zerr.Wrap(err, "failed to report status")
	}
	if err := sink.ReportAction(domain.TagNone, "Start to build"); err != nil {
		return domain.ResultFailed, zerr.Wrap(err, "failed to report action")
	}

	result := w.chain.Build(ctx, env, sink)

	if err := sink.ReportCompleting(result); err != nil {
		return result, zerr.Wrap(err, "failed to report build result")
	}
	return result, nil
}

// complete harvests properties and publishes artifacts. A publish failure turns the result
// into ResultFailed whatever the build result was.
func (w *Work) complete(ctx context.Context, result domain.JobResult, sink ports.ReportingSink) (domain.JobResult, error) {
	tag, status := domain.TagJobFail, domain.ResultFailed
	if result.IsPassed() {
		tag, status = domain.TagJobPass, domain.ResultPassed
	}
	if err := sink.ConsumeLine(tag, "Current job status: "+status.String()); err != nil {
		return result, zerr.Wrap(err, "failed to report job status")
	}
	if err := sink.ReportStatus(domain.PhaseCompleting); err != nil {
		return result, zerr.Wrap(err, "failed to report status")
	}

	if err := sink.ReportAction(domain.TagNone, "Start to create properties"); err != nil {
		return result, zerr.Wrap(err, "failed to report action")
	}
	w.generateProperties(ctx, sink)

	if err := sink.ReportAction(domain.TagPublish, "Start to upload"); err != nil {
		return result, zerr.Wrap(err, "failed to report action")
	}
	if err := w.publisher.Publish(ctx, w.assignment.WorkingDirectory, w.assignment.Artifacts); err != nil {
		w.logger.Error(zerr.Wrap(err, "failed to publish artifacts"))
		if err := sink.ConsumeLine(domain.TagPublishErr, err.Error()); err != nil {
			return domain.ResultFailed, zerr.Wrap(err, "failed to report publish error")
		}
		return domain.ResultFailed, nil
	}
	return result, nil
}

// generateProperties is best effort: a failing generator never fails the job.
func (w *Work) generateProperties(ctx context.Context, sink ports.ReportingSink) {
	for _, plan := range w.assignment.Properties {
		err := w.properties.Generate(ctx, plan, sink, w.assignment.WorkingDirectory)
		if err == nil {
			continue
		}
		w.logger.Error(zerr.With(zerr.Wrap(err, "failed to create property"), "property", plan.Name))
		line := fmt.Sprintf("Failed to create property '%s': %v", plan.Name, err)
		if err := sink.ConsumeLine(domain.TagNone, line); err != nil {
			w.logger.Error(zerr.Wrap(err, "failed to report property error"))
		}
	}
}

func (w *Work) reportIgnored(sink ports.ReportingSink) {
	w.protect("failed to report cancelled job", func() error {
		w.chain.WaitForCancelTasks()
		return sink.ReportAction(domain.TagNone, "Job is cancelled")
	})
}

func (w *Work) reportFailure(sink ports.ReportingSink, cause error) {
	w.protect("failed to report job failure", func() error {
		return sink.ReportErrorMessage(cause.Error(), cause)
	})
}

// reportCompletion waits for the cancel tasks before sending the single terminal report.
func (w *Work) reportCompletion(sink ports.ReportingSink, result domain.JobResult) {
	w.protect("failed to report job completion", func() error {
		w.chain.WaitForCancelTasks()
		if result == domain.ResultNotRun {
			if err := sink.ReportStatus(domain.PhaseCompleted); err != nil {
				return err
			}
			return sink.ReportAction(domain.TagNone, "Job completed")
		}
		return sink.ReportCompleted(result)
	})
}

// protect logs and swallows every error or panic raised by fn.
func (w *Work) protect(msg string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error(zerr.With(zerr.Wrap(domain.ErrCollaboratorPanic, msg), "panic", fmt.Sprint(r)))
		}
	}()
	if err := fn(); err != nil {
		w.logger.Error(zerr.Wrap(err, msg))
	}
}
