// Package fakes provides hand-written test doubles for ports that need to record call order.
package fakes

import (
	"fmt"
	"strings"
	"sync"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
)

var _ ports.ReportingSink = (*Sink)(nil)

// Event is one recorded sink call.
type Event struct {
	Kind   string
	Tag    domain.ConsoleTag
	Text   string
	Phase  domain.JobPhase
	Result domain.JobResult
	Cause  error
}

// String renders the event for assertion messages.
func (e Event) String() string {
	switch e.Kind {
	case "status":
		return "status " + string(e.Phase)
	case "completing", "completed":
		return e.Kind + " " + e.Result.String()
	default:
		return fmt.Sprintf("%s [%s] %s", e.Kind, e.Tag, e.Text)
	}
}

// Sink records every call. Fail makes every reporting method return an error;
// Panic makes them panic instead.
type Sink struct {
	mu      sync.Mutex
	events  []Event
	Ignored bool
	Fail    error
	Panic   any
	// OnCall runs before each recorded call, outside the lock.
	OnCall func(Event)
}

func (s *Sink) record(e Event) error {
	if s.OnCall != nil {
		s.OnCall(e)
	}
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
	if s.Panic != nil {
		panic(s.Panic)
	}
	return s.Fail
}

// ConsumeLine records a console line.
func (s *Sink) ConsumeLine(tag domain.ConsoleTag, line string) error {
	return s.record(Event{Kind: "line", Tag: tag, Text: line})
}

// ReportStatus records a phase change.
func (s *Sink) ReportStatus(phase domain.JobPhase) error {
	return s.record(Event{Kind: "status", Phase: phase})
}

// ReportAction records an action.
func (s *Sink) ReportAction(tag domain.ConsoleTag, message string) error {
	return s.record(Event{Kind: "action", Tag: tag, Text: message})
}

// ReportCompleting records the build result.
func (s *Sink) ReportCompleting(result domain.JobResult) error {
	return s.record(Event{Kind: "completing", Result: result})
}

// ReportCompleted records the final result.
func (s *Sink) ReportCompleted(result domain.JobResult) error {
	return s.record(Event{Kind: "completed", Result: result})
}

// ReportErrorMessage records an error message.
func (s *Sink) ReportErrorMessage(message string, cause error) error {
	return s.record(Event{Kind: "error", Text: message, Cause: cause})
}

// IsIgnored returns the Ignored field.
func (s *Sink) IsIgnored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Ignored
}

// SetIgnored changes the Ignored field under the lock.
func (s *Sink) SetIgnored(ignored bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Ignored = ignored
}

// Events returns a copy of the recorded events.
func (s *Sink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Kind returns the recorded events of one kind.
func (s *Sink) Kind(kind string) []Event {
	var out []Event
	for _, e := range s.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Text joins the text of every recorded event, one per line.
func (s *Sink) Text() string {
	var b strings.Builder
	for _, e := range s.Events() {
		b.WriteString(e.Text)
		if e.Cause != nil {
			b.WriteString(" ")
			b.WriteString(e.Cause.Error())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Terminal returns the events that end a job: completed results, the bare completed status
// and the "Job is cancelled" action.
func (s *Sink) Terminal() []Event {
	var out []Event
	for _, e := range s.Events() {
		switch {
		case e.Kind == "completed":
			out = append(out, e)
		case e.Kind == "status" && e.Phase == domain.PhaseCompleted:
			out = append(out, e)
		case e.Kind == "action" && e.Text == "Job is cancelled":
			out = append(out, e)
		}
	}
	return out
}
