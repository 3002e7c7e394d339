package fs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxPropertyLength caps content properties; longer first lines are truncated.
const maxPropertyLength = 255

var _ ports.PropertyGenerator = (*Properties)(nil)

// Properties derives job properties from files in the working directory.
type Properties struct {
	hasher *Hasher
}

// NewProperties creates a new Properties.
func NewProperties(hasher *Hasher) *Properties {
	return &Properties{hasher: hasher}
}

// Generate computes the property described by plan and reports it to the sink.
func (p *Properties) Generate(_ context.Context, plan domain.PropertyPlan, sink ports.ReportingSink, workingDir string) error {
	path := filepath.Join(workingDir, plan.Source)

	var value string
	var err error
	switch plan.Kind {
	case domain.PropertyChecksum:
		value, err = p.hasher.ComputePathHash(path)
	case domain.PropertyContent:
		value, err = firstLine(path)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownPropertyKind, string(plan.Kind)), "property", plan.Name)
	}
	if err != nil {
		return zerr.With(err, "property", plan.Name)
	}

	return sink.ConsumeLine(domain.TagNone, fmt.Sprintf("property '%s' = '%s'", plan.Name, value))
}

func firstLine(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open property source"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	scanner := bufio.NewScanner(f)
	line := ""
	if scanner.Scan() {
		line = strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read property source"), "path", path)
	}
	if len(line) > maxPropertyLength {
		line = line[:maxPropertyLength]
	}
	return line, nil
}
