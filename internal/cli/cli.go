package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/fluxgridgo/internal/app"
	"github.com/vk/fluxgridgo/internal/compile"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("fluxgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
fluxgridgo - compile a reaction network into a MiniZinc model and solve it.

Usage:
  fluxgridgo [options] FILE TARGET

Arguments:
  FILE
    Path to the .hcl network source file (env: FILE).
  TARGET
    Name of the target to optimize (env: TARGET).

Options:
`)
		flagSet.PrintDefaults()
	}

	solverArgsFlag := flagSet.String("solver-arguments", "", "Arguments to pass through to the solver (env: SOLVER_ARGS).")
	sFlag := flagSet.String("s", "", "Arguments to pass through to the solver (shorthand).")
	modeFlag := flagSet.String("mode", "rates", "Compilation mode. Options: 'rates' or 'cycles'.")
	backendFlag := flagSet.String("solver", "cbc", "Solver backend handed to minizinc --solver.")
	binaryFlag := flagSet.String("minizinc", "minizinc", "MiniZinc frontend executable.")
	outputFlag := flagSet.String("output", app.DefaultModelPath, "Path of the generated model file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	file := flagSet.Arg(0)
	if file == "" {
		file = os.Getenv("FILE")
	}
	target := flagSet.Arg(1)
	if target == "" {
		target = os.Getenv("TARGET")
	}

	if file == "" || target == "" {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 1, Message: "both FILE and TARGET are required"}
	}

	solverArgs := *solverArgsFlag
	if solverArgs == "" {
		solverArgs = *sFlag
	}
	if solverArgs == "" {
		solverArgs = os.Getenv("SOLVER_ARGS")
	}

	mode, err := compile.ParseMode(*modeFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 1, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 1, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		File:          file,
		Target:        target,
		Mode:          mode,
		SolverArgs:    solverArgs,
		SolverBackend: *backendFlag,
		SolverBinary:  *binaryFlag,
		ModelPath:     *outputFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		CommandLine:   "fluxgridgo " + strings.Join(args, " "),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	return config, false, nil
}
