// Package linear provides a reporting sink that prints job progress as timestamped lines.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
)

const timestampLayout = "15:04:05.000"

var _ ports.ReportingSink = (*Sink)(nil)

// Sink implements ports.ReportingSink for a local run. Console lines and actions are written
// to the output, phase changes and results go to the logger.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	output *termenv.Output
	logger ports.Logger
	now    func() time.Time

	ignored   atomic.Bool
	completed atomic.Bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithClock replaces the clock used for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// WithProfile forces the color profile of the output.
func WithProfile(profile termenv.Profile) Option {
	return func(s *Sink) {
		s.output = termenv.NewOutput(s.w, termenv.WithProfile(profile))
	}
}

// NewSink creates a Sink writing to w.
func NewSink(w io.Writer, logger ports.Logger, opts ...Option) *Sink {
	if w == nil {
		w = os.Stdout
	}
	s := &Sink{
		w:      w,
		output: termenv.NewOutput(w, termenv.WithProfile(colorProfile())),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// Ignore marks the job as ignored. The job stops at its next checkpoint without reporting a
// result.
func (s *Sink) Ignore() {
	if !s.ignored.Swap(true) {
		s.logger.Warn("job output is ignored from now on")
	}
}

// IsIgnored reports whether Ignore was called.
func (s *Sink) IsIgnored() bool {
	return s.ignored.Load()
}

// Completed reports whether a final result or the bare completion notice was reported.
func (s *Sink) Completed() bool {
	return s.completed.Load()
}

// ConsumeLine prints a console line.
func (s *Sink) ConsumeLine(tag domain.ConsoleTag, line string) error {
	return s.print(tag, line, s.output.String(line))
}

// ReportStatus logs the phase the job entered. The completed phase also counts as the
// completion notice.
func (s *Sink) ReportStatus(phase domain.JobPhase) error {
	if phase == domain.PhaseCompleted {
		s.completed.Store(true)
	}
	s.logger.Info(fmt.Sprintf("job is %s", phase))
	return nil
}

// ReportAction prints a job step in bold.
func (s *Sink) ReportAction(tag domain.ConsoleTag, message string) error {
	return s.print(tag, message, s.output.String(message).Bold())
}

// ReportCompleting logs the build result.
func (s *Sink) ReportCompleting(result domain.JobResult) error {
	s.logger.Info(fmt.Sprintf("build finished: %s", result))
	return nil
}

// ReportCompleted prints the final result.
func (s *Sink) ReportCompleted(result domain.JobResult) error {
	s.completed.Store(true)
	s.logger.Info(fmt.Sprintf("job completed: %s", result))

	text := fmt.Sprintf("Job completed: %s", result)
	style := s.output.String(text).Bold()
	tag := domain.TagJobPass
	if result.IsPassed() {
		style = style.Foreground(termenv.ANSIGreen)
	} else {
		tag = domain.TagJobFail
		style = style.Foreground(termenv.ANSIRed)
	}
	return s.print(tag, text, style)
}

// ReportErrorMessage prints the message in red and logs the cause.
func (s *Sink) ReportErrorMessage(message string, cause error) error {
	if cause != nil {
		s.logger.Error(zerr.Wrap(cause, message))
	}
	return s.print(domain.TagNone, message, s.output.String(message).Foreground(termenv.ANSIRed))
}

func (s *Sink) print(tag domain.ConsoleTag, text string, style termenv.Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.output.String(s.now().Format(timestampLayout)).Faint().String()

	var err error
	if tag == domain.TagNone {
		_, err = fmt.Fprintf(s.output, "%s %s\n", stamp, style)
	} else {
		_, err = fmt.Fprintf(s.output, "%s %s %s\n", stamp, s.styleTag(tag), style)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write console line"), "line", text)
	}
	return nil
}

func (s *Sink) styleTag(tag domain.ConsoleTag) string {
	label := s.output.String(fmt.Sprintf("[%s]", tag))
	switch tag {
	case domain.TagPrepErr, domain.TagJobFail, domain.TagPublishErr:
		label = label.Foreground(termenv.ANSIRed)
	case domain.TagJobPass:
		label = label.Foreground(termenv.ANSIGreen)
	default:
		label = label.Faint()
	}
	return label.String()
}
