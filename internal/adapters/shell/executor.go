// Package shell runs task commands as local processes.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultGracePeriod is how long a cancelled command may take to exit after SIGTERM before it
// is killed.
const DefaultGracePeriod = 10 * time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger      ports.Logger
	gracePeriod time.Duration
	systemEnv   func() []string
}

// NewExecutor creates an Executor that inherits the agent process environment.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:      logger,
		gracePeriod: DefaultGracePeriod,
		systemEnv:   os.Environ,
	}
}

// WithGracePeriod sets the delay between SIGTERM and SIGKILL for cancelled commands.
func (e *Executor) WithGracePeriod(d time.Duration) *Executor {
	e.gracePeriod = d
	return e
}

// WithSystemEnv replaces the base environment inherited by every command.
func (e *Executor) WithSystemEnv(fn func() []string) *Executor {
	e.systemEnv = fn
	return e
}

// Execute runs the task's command, streaming its output to stdout and stderr.
//
// The environment is merged with the following priority (low to high): the system environment,
// env (the job environment) and the task's own overrides. When ctx is cancelled the process
// receives SIGTERM and is killed after the grace period.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, env []string, stdout, stderr io.Writer) error {
	if len(task.Command) == 0 {
		return nil
	}

	name := task.Command[0]
	args := task.Command[1:]
	cmdEnv := resolveEnvironment(e.systemEnv(), env, task.Environment)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // task commands come from the job assignment
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if dir := task.WorkingDir.String(); dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = cmdEnv
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = e.gracePeriod

	e.logger.Info(fmt.Sprintf("executing %s in %q", task.Name, cmd.Dir))

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(
		zerr.With(zerr.Wrap(domain.ErrTaskFailed, fmt.Sprintf("command %q: %v", name, err)), "exit_code", exitCode),
		"task", task.Name.String(),
	)
}

// resolveEnvironment merges environment variables with the defined priority.
// The result is sorted by name.
func resolveEnvironment(sysEnv, jobEnv []string, taskEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, source := range [][]string{sysEnv, jobEnv} {
		for _, entry := range source {
			if k, v, ok := strings.Cut(entry, "="); ok {
				envMap[k] = v
			}
		}
	}
	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
