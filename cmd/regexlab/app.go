package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Veraticus/regexlab/pkg/command"
	"github.com/Veraticus/regexlab/pkg/config"
	"github.com/Veraticus/regexlab/pkg/interfaces"
	"github.com/Veraticus/regexlab/pkg/report"
	"github.com/Veraticus/regexlab/pkg/status"
	"github.com/Veraticus/regexlab/pkg/store"
)

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config     *config.Config
	Logger     *log.Logger
	Store      interfaces.Store
	Printer    *status.Printer
	Dispatcher *command.Dispatcher
}

// NewDependencies creates all dependencies with the given configuration,
// printing results to stdout.
func NewDependencies(cfg *config.Config, stdout io.Writer) (*Dependencies, error) {
	format, err := report.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid export format: %w", err)
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: log.New(os.Stderr, "regexlab: ", 0),
	}

	deps.Store = store.New(cfg.DataDir,
		store.WithHistoryLimit(cfg.HistoryLimit),
		store.WithLogger(deps.Logger),
	)

	// Color only when stdout is the terminal being written to.
	var color bool
	if f, ok := stdout.(*os.File); ok {
		color = status.ColorEnabled(cfg.Color, f)
	} else {
		color = cfg.Color == config.ColorAlways
	}
	deps.Printer = status.NewPrinter(stdout, color)

	deps.Dispatcher = command.NewDispatcher(deps.Store, deps.Printer,
		command.WithLogger(deps.Logger),
		command.WithDebug(cfg.Debug),
		command.WithMatchTimeout(cfg.MatchTimeout),
		command.WithExportFormat(format),
	)

	return deps, nil
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// Run executes one command and returns the process exit code
func (a *Application) Run(argv []string) int {
	return a.deps.Dispatcher.Run(argv)
}
