package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	hcl2 "github.com/hashicorp/hcl/v2"
	"github.com/vk/fluxgridgo/internal/compile"
	"github.com/vk/fluxgridgo/internal/ctxlog"
	"github.com/vk/fluxgridgo/internal/diag"
	"github.com/vk/fluxgridgo/internal/minizinc"
	"github.com/vk/fluxgridgo/internal/solver"
)

// commandLineSource names the synthetic file that diagnostics about CLI
// arguments point into.
const commandLineSource = "<command-line>"

// Run executes the pipeline end to end. Every failure comes back as a
// *diag.Error carrying span-labeled diagnostics; nothing is retried.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "file", cfg.File, "target", cfg.Target, "mode", cfg.Mode.String())

	src, err := os.ReadFile(cfg.File)
	if err != nil {
		return pathError(cfg.File, "while reading this file", err)
	}

	prog, diags := a.loader.LoadSource(ctx, cfg.File, src)
	if diags.HasErrors() {
		return diag.NewError(diags, a.loader.Files())
	}

	target, ok := prog.Targets[cfg.Target]
	if !ok {
		rng := diag.SpanIn(commandLineSource, cfg.CommandLine, cfg.Target)
		return diag.NewError(hcl2.Diagnostics{{
			Severity: hcl2.DiagError,
			Summary:  "target name not found",
			Detail:   fmt.Sprintf("%q is not declared in %s; did you mean %s", cfg.Target, cfg.File, diag.ExpectedList(prog.TargetNames())),
			Subject:  rng.Ptr(),
		}}, map[string]*hcl2.File{commandLineSource: diag.SyntheticFile(cfg.CommandLine)})
	}

	m, diags := compile.Compile(ctx, prog, target, cfg.Mode)
	if diags.HasErrors() {
		return diag.NewError(diags, a.loader.Files())
	}

	if err := a.writeModel(cfg.ModelPath, string(src), m); err != nil {
		return err
	}
	a.logger.Debug("Model file written.", "path", cfg.ModelPath)

	out, err := a.runner.Run(ctx, cfg.ModelPath)
	if err != nil {
		return solverError(err)
	}

	fmt.Fprintln(a.outW, out)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeModel serializes the compiled model. A half-written file is removed
// so no partial model is left looking usable.
func (a *App) writeModel(path, source string, m *compile.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return pathError(path, "while creating this file", err)
	}

	if err := minizinc.Write(f, source, m); err != nil {
		f.Close()
		os.Remove(path)
		return pathError(path, "while writing to this file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return pathError(path, "while writing to this file", err)
	}
	return nil
}

// pathError labels a file-system failure with a span over the path itself.
func pathError(path, label string, err error) error {
	rng := diag.SpanIn(path, path, path)
	return diag.NewError(hcl2.Diagnostics{{
		Severity: hcl2.DiagError,
		Summary:  err.Error(),
		Detail:   label,
		Subject:  rng.Ptr(),
	}}, map[string]*hcl2.File{path: diag.SyntheticFile(path)})
}

// solverError converts runner failures into diagnostics, surfacing the
// solver's stderr verbatim.
func solverError(err error) error {
	var spawnErr *solver.SpawnError
	if errors.As(err, &spawnErr) {
		rng := diag.SpanIn(spawnErr.Binary, spawnErr.Binary, spawnErr.Binary)
		return diag.NewError(hcl2.Diagnostics{{
			Severity: hcl2.DiagError,
			Summary:  spawnErr.Error(),
			Subject:  rng.Ptr(),
		}}, map[string]*hcl2.File{spawnErr.Binary: diag.SyntheticFile(spawnErr.Binary)})
	}

	var runErr *solver.RunError
	if errors.As(err, &runErr) {
		name := fmt.Sprintf("<%s>", runErr.Binary)
		rng := diag.SpanIn(name, runErr.Stderr, "")
		return diag.NewError(hcl2.Diagnostics{{
			Severity: hcl2.DiagError,
			Summary:  runErr.Error(),
			Detail:   runErr.Stderr,
			Subject:  rng.Ptr(),
		}}, map[string]*hcl2.File{name: diag.SyntheticFile(runErr.Stderr)})
	}

	return err
}
