// Package solver runs the external MiniZinc process over a generated model
// file and captures its report. It owns argument assembly and the host
// parallelism hint; it knows nothing about the model's contents.
package solver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/vk/fluxgridgo/internal/ctxlog"
)

// Options configure one solver invocation.
type Options struct {
	// Binary is the solver frontend executable. Defaults to "minizinc".
	Binary string

	// Backend is the solver passed to --solver. Defaults to "cbc".
	Backend string

	// ExtraArgs are appended verbatim before the model path.
	ExtraArgs []string

	// Parallelism is the -p worker hint; 0 means the host core count.
	Parallelism int
}

// Runner invokes the solver.
type Runner struct {
	opts Options
}

// New builds a Runner, filling in option defaults.
func New(opts Options) *Runner {
	if opts.Binary == "" {
		opts.Binary = "minizinc"
	}
	if opts.Backend == "" {
		opts.Backend = "cbc"
	}
	if opts.Parallelism == 0 {
		opts.Parallelism = runtime.NumCPU()
	}
	return &Runner{opts: opts}
}

// Args assembles the full argument list for a model path. The message flags
// silence MiniZinc's separators so the output directive's lines come out
// clean; unsatisfiable runs still say so.
func (r *Runner) Args(modelPath string) []string {
	args := []string{
		"--soln-sep", "",
		"--search-complete-msg", "",
		"--unsatorunbnd-msg", "unsatisfiable or unbounded",
		"--unsatisfiable-msg", "unsatisfiable",
		"--solver", r.opts.Backend,
		"-p", strconv.Itoa(r.opts.Parallelism),
	}
	args = append(args, r.opts.ExtraArgs...)
	return append(args, modelPath)
}

// SpawnError reports that the solver process could not be started at all.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("while spawning %q process: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// RunError reports a solver process that started but exited non-zero.
type RunError struct {
	Binary   string
	ExitCode int
	Stderr   string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%q process exited with status %d", e.Binary, e.ExitCode)
}

// Run executes the solver on the model file and returns its standard
// output. The call blocks until the process exits; there is no timeout
// beyond whatever the context imposes.
func (r *Runner) Run(ctx context.Context, modelPath string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	args := r.Args(modelPath)
	logger.Debug("Invoking solver.", "binary", r.opts.Binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.opts.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", &SpawnError{Binary: r.opts.Binary, Err: err}
	}

	err := cmd.Wait()
	logger.Debug("Solver finished.", "exit_code", cmd.ProcessState.ExitCode(), "stdout_bytes", stdout.Len())
	if err != nil {
		return "", &RunError{
			Binary:   r.opts.Binary,
			ExitCode: cmd.ProcessState.ExitCode(),
			Stderr:   stderr.String(),
		}
	}

	return stdout.String(), nil
}

// SplitExtraArgs turns the --solver-arguments string into an argument list.
func SplitExtraArgs(s string) []string {
	return strings.Fields(s)
}
