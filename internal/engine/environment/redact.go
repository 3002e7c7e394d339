package environment

import (
	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
)

var _ ports.ReportingSink = (*RedactingSink)(nil)

// RedactingSink masks secure values in every text it forwards, whichever variable introduced
// the secret. It belongs to the job goroutine like the sink it wraps.
type RedactingSink struct {
	sink ports.ReportingSink
	env  *domain.EnvironmentContext
}

// NewRedactingSink wraps sink, redacting the secure values of env.
func NewRedactingSink(sink ports.ReportingSink, env *domain.EnvironmentContext) *RedactingSink {
	return &RedactingSink{sink: sink, env: env}
}

// Use switches to the secure values of env, typically once the job environment is assembled.
func (s *RedactingSink) Use(env *domain.EnvironmentContext) {
	s.env = env
}

func (s *RedactingSink) redact(text string) string {
	if s.env == nil {
		return text
	}
	return s.env.Redact(text)
}

// ConsumeLine forwards a redacted line.
func (s *RedactingSink) ConsumeLine(tag domain.ConsoleTag, line string) error {
	return s.sink.ConsumeLine(tag, s.redact(line))
}

// ReportStatus forwards the phase.
func (s *RedactingSink) ReportStatus(phase domain.JobPhase) error {
	return s.sink.ReportStatus(phase)
}

// ReportAction forwards a redacted action message.
func (s *RedactingSink) ReportAction(tag domain.ConsoleTag, message string) error {
	return s.sink.ReportAction(tag, s.redact(message))
}

// ReportCompleting forwards the build result.
func (s *RedactingSink) ReportCompleting(result domain.JobResult) error {
	return s.sink.ReportCompleting(result)
}

// ReportCompleted forwards the final result.
func (s *RedactingSink) ReportCompleted(result domain.JobResult) error {
	return s.sink.ReportCompleted(result)
}

// ReportErrorMessage forwards a redacted message; the cause's text is redacted as well.
func (s *RedactingSink) ReportErrorMessage(message string, cause error) error {
	if cause != nil {
		cause = &redactedError{msg: s.redact(cause.Error()), cause: cause}
	}
	return s.sink.ReportErrorMessage(s.redact(message), cause)
}

// IsIgnored forwards the ignored flag.
func (s *RedactingSink) IsIgnored() bool {
	return s.sink.IsIgnored()
}

type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.cause }
