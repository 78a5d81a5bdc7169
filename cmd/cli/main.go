package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/fluxgridgo/internal/app"
	"github.com/vk/fluxgridgo/internal/cli"
	"github.com/vk/fluxgridgo/internal/diag"
)

// main is the entrypoint for the fluxgridgo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Span-labeled failures are rendered to errW; the returned error
// only drives the exit code.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	fluxgridApp := app.NewApp(outW, errW, appConfig)

	if err := fluxgridApp.Run(context.Background(), appConfig); err != nil {
		var dErr *diag.Error
		if errors.As(err, &dErr) {
			if renderErr := dErr.Render(errW, 78, false); renderErr != nil {
				return renderErr
			}
			return &cli.ExitError{Code: 1}
		}
		return err
	}
	return nil
}
