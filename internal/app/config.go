package app

import (
	"errors"

	"github.com/vk/fluxgridgo/internal/compile"
)

// DefaultModelPath is where the generated MiniZinc model lands unless
// overridden.
const DefaultModelPath = "program.mzn"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	File   string // network source file
	Target string // target to optimize

	Mode          compile.Mode
	SolverArgs    string // extra arguments for the solver frontend
	SolverBackend string // --solver value
	SolverBinary  string // frontend executable
	ModelPath     string // generated model file

	LogFormat string
	LogLevel  string

	// CommandLine is the reconstructed invocation, used to point spans at
	// CLI arguments.
	CommandLine string
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.File == "" {
		return nil, errors.New("FILE is a required argument and cannot be empty")
	}
	if cfg.Target == "" {
		return nil, errors.New("TARGET is a required argument and cannot be empty")
	}
	if cfg.ModelPath == "" {
		cfg.ModelPath = DefaultModelPath
	}
	return &cfg, nil
}
