// Package workdir guarantees a usable working directory before a job touches it.
package workdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
)

const dirPerm = 0o750

// Prepare cleans dir when clean is set and dir exists, then creates dir if it is missing.
// Every failure is wrapped in domain.ErrWorkingDirectory and must abort the job.
func Prepare(dir string, clean bool, sink ports.ReportingSink) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWorkingDirectory, err.Error()), "path", dir)
	}

	exists, err := isDir(abs)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWorkingDirectory, err.Error()), "path", abs)
	}

	if clean && exists {
		if err := Clean(abs); err != nil {
			return zerr.With(
				zerr.Wrap(domain.ErrWorkingDirectory,
					"clean working directory is set to true, unable to clean working directory: "+err.Error()),
				"path", abs,
			)
		}
		line := fmt.Sprintf("Cleaning working directory %q since stage is configured to clean working directory", abs)
		if err := sink.ConsumeLine(domain.TagNone, line); err != nil {
			return err
		}
	}

	if !exists {
		if err := os.MkdirAll(abs, dirPerm); err != nil {
			return zerr.With(
				zerr.Wrap(domain.ErrWorkingDirectory, "unable to create working directory: "+err.Error()),
				"path", abs,
			)
		}
	}
	return nil
}

// Clean removes every entry of dir, keeping dir itself.
func Clean(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var errs error
	for _, e := range entries {
		errs = errors.Join(errs, os.RemoveAll(filepath.Join(dir, e.Name())))
	}
	return errs
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, zerr.New("working directory path is a file")
	}
	return true, nil
}
