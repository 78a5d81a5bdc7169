package app

import (
	"io"
	"log/slog"

	"github.com/vk/fluxgridgo/internal/hcl"
	"github.com/vk/fluxgridgo/internal/solver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader *hcl.Loader
	runner *solver.Runner
}

// NewApp is the constructor for the main application. Logs go to errW so
// the solver's report stays alone on outW.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	runner := solver.New(solver.Options{
		Binary:    cfg.SolverBinary,
		Backend:   cfg.SolverBackend,
		ExtraArgs: solver.SplitExtraArgs(cfg.SolverArgs),
	})

	return &App{
		outW:   outW,
		logger: logger,
		loader: hcl.NewLoader(),
		runner: runner,
	}
}
