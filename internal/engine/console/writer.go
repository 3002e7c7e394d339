// Package console turns byte streams from collaborators into sink lines.
package console

import (
	"bytes"
	"sync"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
)

// LineWriter splits written bytes into lines and forwards each to the sink with a tag.
// It is safe for concurrent use, since os/exec copies stdout and stderr on separate goroutines.
type LineWriter struct {
	mu   *sync.Mutex
	sink ports.ReportingSink
	tag  domain.ConsoleTag
	buf  []byte
}

// NewLineWriter creates a LineWriter with its own lock.
func NewLineWriter(sink ports.ReportingSink, tag domain.ConsoleTag) *LineWriter {
	return &LineWriter{mu: &sync.Mutex{}, sink: sink, tag: tag}
}

// Pair returns writers for a stdout/stderr pair that share one lock,
// so the sink only ever sees one writer at a time.
func Pair(sink ports.ReportingSink, outTag, errTag domain.ConsoleTag) (stdout, stderr *LineWriter) {
	mu := &sync.Mutex{}
	return &LineWriter{mu: mu, sink: sink, tag: outTag}, &LineWriter{mu: mu, sink: sink, tag: errTag}
}

// Write forwards every complete line in p. A trailing partial line is kept until Flush.
func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(w.buf[:i], []byte{'\r'}))
		w.buf = w.buf[i+1:]
		if err := w.sink.ConsumeLine(w.tag, line); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush forwards a pending partial line.
func (w *LineWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) == 0 {
		return nil
	}
	line := string(w.buf)
	w.buf = nil
	return w.sink.ConsumeLine(w.tag, line)
}
