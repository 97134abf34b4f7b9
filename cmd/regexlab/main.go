package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/regexlab/pkg/command"
	"github.com/Veraticus/regexlab/pkg/config"
	flag "github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses the global flags, loads the configuration and hands the
// remaining arguments to the application.
func run(argv []string) int {
	var (
		configPath string
		dataDir    string
	)

	// Global flags must come before the command; everything after the first
	// positional argument belongs to the command.
	fs := flag.NewFlagSet("regexlab", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&configPath, "config", "", "Path to config file")
	fs.StringVar(&dataDir, "data-dir", "", "Directory for history and favorites")
	fs.Usage = printUsage

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return command.ExitOK
		}
		return command.ExitError
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return command.ExitError
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	deps, err := NewDependencies(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating dependencies: %v\n", err)
		return command.ExitError
	}

	if cfg.Debug {
		deps.Logger.Printf("debug: data dir %s, history limit %d", cfg.DataDir, cfg.HistoryLimit)
	}

	return NewApplication(deps).Run(fs.Args())
}

func printUsage() {
	fmt.Print(command.Usage(""))
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  REGEXLAB_CONFIG         Path to config file")
	fmt.Println("  REGEXLAB_DATA_DIR       Directory for history and favorites (default: ~/.regexlab)")
	fmt.Println("  REGEXLAB_HISTORY_LIMIT  History entries kept (default: 50)")
	fmt.Println("  REGEXLAB_MATCH_TIMEOUT  Per-match timeout, e.g. 2s (default: none)")
	fmt.Println("  REGEXLAB_FORMAT         Default export format (default: json)")
	fmt.Println("  REGEXLAB_COLOR          auto, always or never (default: auto)")
	fmt.Println("  REGEXLAB_DEBUG          Print debug diagnostics (true/false)")
	fmt.Println()
	fmt.Println("Configuration file: ~/.config/regexlab/config.yaml")
}
