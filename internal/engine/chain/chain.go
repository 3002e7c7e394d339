// Package chain runs the ordered build tasks of a job and its cancel tasks.
package chain

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/bob-agent/internal/engine/console"
	"go.trai.ch/zerr"
)

// Chain executes the normal task sequence of a job on the job goroutine, and the cancel task
// sequence on its own goroutine once the job is cancelled.
//
// The only state shared between the two goroutines is the cancellation signal, the one-shot
// trigger of the cancel sequence and the channel closed when that sequence finishes.
type Chain struct {
	tasks       []domain.Task
	cancelTasks []domain.Task
	executor    ports.Executor
	logger      ports.Logger
	telemetry   ports.Telemetry
	signal      *domain.CancellationSignal

	cancelOnce sync.Once
	triggered  atomic.Bool
	cancelDone chan struct{}
}

// New creates a Chain for the given task sequences.
func New(
	tasks, cancelTasks []domain.Task,
	executor ports.Executor,
	logger ports.Logger,
	telemetry ports.Telemetry,
	signal *domain.CancellationSignal,
) *Chain {
	return &Chain{
		tasks:       tasks,
		cancelTasks: cancelTasks,
		executor:    executor,
		logger:      logger,
		telemetry:   telemetry,
		signal:      signal,
		cancelDone:  make(chan struct{}),
	}
}

// Build runs the tasks in order and returns the job result.
//
// The accumulated outcome starts as passed. A task runs only when its run-if policy accepts the
// outcome so far; a failing task turns the outcome to failed. Cancellation observed before a
// task starts stops the chain: the result is ResultNotRun when no task ran yet.
func (c *Chain) Build(ctx context.Context, env *domain.EnvironmentContext, sink ports.ReportingSink) domain.JobResult {
	ctx, stop := c.signal.Bind(ctx)
	defer stop()

	outcome := domain.ResultPassed
	ran := false

	for i := range c.tasks {
		task := &c.tasks[i]

		if c.signal.IsSet() {
			if !ran {
				return domain.ResultNotRun
			}
			return domain.ResultFailed
		}

		runIf := task.RunIf
		if runIf == "" {
			runIf = domain.RunIfPassed
		}
		if !runIf.Allows(outcome) {
			c.line(sink, fmt.Sprintf("Skipping task: %s (runs if %s, job is %s)", describe(task), runIf, outcome))
			continue
		}

		ran = true
		c.line(sink, "Task: "+describe(task))
		start := time.Now()

		err := c.execute(ctx, task, env, sink)
		status := domain.ResultPassed
		if err != nil {
			status = domain.ResultFailed
			outcome = domain.ResultFailed
			c.logger.Error(zerr.With(zerr.Wrap(err, "task execution failed"), "task", task.Name.String()))
			c.line(sink, err.Error())
		}
		c.line(sink, fmt.Sprintf("Task status: %s (%d ms)", status, time.Since(start).Milliseconds()))
	}
	return outcome
}

func (c *Chain) execute(ctx context.Context, task *domain.Task, env *domain.EnvironmentContext, sink ports.ReportingSink) error {
	ctx, vertex := c.telemetry.Record(ctx, task.Name.String())

	stdout, stderr := console.Pair(sink, domain.TagNone, domain.TagNone)
	err := c.executor.Execute(ctx, task, env.Environ(),
		io.MultiWriter(stdout, vertex.Stdout()),
		io.MultiWriter(stderr, vertex.Stderr()),
	)
	if flushErr := stdout.Flush(); err == nil {
		err = flushErr
	}
	if flushErr := stderr.Flush(); err == nil {
		err = flushErr
	}
	if err != nil && ctx.Err() != nil {
		err = zerr.Wrap(err, context.Cause(ctx).Error())
	}

	vertex.Complete(err)
	return err
}

// line writes an informational line; the chain outcome never depends on it.
func (c *Chain) line(sink ports.ReportingSink, text string) {
	if err := sink.ConsumeLine(domain.TagNone, text); err != nil {
		c.logger.Error(zerr.Wrap(err, "failed to report task progress"))
	}
}

// Cancel raises the cancellation signal and starts the cancel task sequence.
// It may be called from any goroutine, any number of times; the sequence starts at most once.
// The running task is not interrupted here: it observes the signal through its context.
// The sequence is marked triggered before the signal is raised, so any goroutine
// that sees the signal also waits for the sequence in WaitForCancelTasks.
func (c *Chain) Cancel(env *domain.EnvironmentContext) {
	c.cancelOnce.Do(func() {
		c.triggered.Store(true)
		go c.runCancelTasks(env)
	})
	c.signal.Set()
}

// WaitForCancelTasks blocks until the cancel task sequence finished.
// It returns immediately when the sequence was never triggered.
func (c *Chain) WaitForCancelTasks() {
	if !c.triggered.Load() {
		return
	}
	<-c.cancelDone
}

// runCancelTasks must not touch the sink, which belongs to the job goroutine.
func (c *Chain) runCancelTasks(env *domain.EnvironmentContext) {
	defer close(c.cancelDone)

	var environ []string
	if env != nil {
		environ = env.Environ()
	}

	for i := range c.cancelTasks {
		task := &c.cancelTasks[i]
		c.logger.Info("running cancel task " + describe(task))

		ctx, vertex := c.telemetry.Record(context.Background(), "cancel: "+task.Name.String())
		out := &logWriter{logger: c.logger, task: task.Name.String()}
		err := c.runCancelTask(ctx, task, environ, out, vertex)
		vertex.Complete(err)
		if err != nil {
			c.logger.Error(zerr.With(zerr.Wrap(err, "cancel task failed"), "task", task.Name.String()))
		}
	}
}

func (c *Chain) runCancelTask(ctx context.Context, task *domain.Task, environ []string, out io.Writer, vertex ports.Vertex) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.Wrap(domain.ErrCollaboratorPanic, "cancel task panicked"), "panic", fmt.Sprint(r))
		}
	}()
	return c.executor.Execute(ctx, task, environ,
		io.MultiWriter(out, vertex.Stdout()),
		io.MultiWriter(out, vertex.Stderr()),
	)
}

func describe(task *domain.Task) string {
	if len(task.Command) == 0 {
		return task.Name.String()
	}
	return fmt.Sprintf("%s [%s]", task.Name, strings.Join(task.Command, " "))
}

// logWriter forwards cancel task output to the logger, one line at a time.
type logWriter struct {
	logger ports.Logger
	task   string
}

func (w *logWriter) Write(p []byte) (int, error) {
	for line := range strings.SplitSeq(strings.TrimSuffix(string(p), "\n"), "\n") {
		w.logger.Info(w.task + ": " + line)
	}
	return len(p), nil
}
