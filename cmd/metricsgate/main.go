package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/metricsgate/internal/capability"
	"git.home.luguber.info/inful/metricsgate/internal/config"
	"git.home.luguber.info/inful/metricsgate/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct {
	} `cmd:"" help:"Run the metrics host: export listener, grants watcher, audit pruner"`

	Validate struct {
	} `cmd:"" help:"Validate the configuration file and exit"`

	Grants struct {
	} `cmd:"" help:"Print the effective capability grants"`

	Version struct {
	} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	setupLogging()

	switch ctx.Command() {
	case "serve":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		applyLogLevel(cfg)
		if err := runServe(cfg); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "validate":
		if _, err := config.Load(CLI.Config); err != nil {
			slog.Error("Configuration invalid", "error", err)
			os.Exit(1)
		}
		fmt.Println("configuration ok")
	case "grants":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := printGrants(cfg); err != nil {
			slog.Error("Failed to read grants", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("metricsgate %s (built %s, commit %s)\n",
			version.Version, version.BuildTime, version.GitCommit)
	}
}

func setupLogging() {
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// applyLogLevel honors the configured level unless -v already forced debug.
func applyLogLevel(cfg *config.Config) {
	if CLI.Verbose {
		return
	}
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
}

func printGrants(cfg *config.Config) error {
	var grants map[string][]string

	if cfg.Capabilities.GrantsFile != "" {
		fc, err := capability.NewFileChecker(cfg.Capabilities.GrantsFile)
		if err != nil {
			return err
		}
		grants = fc.Grants()
	} else {
		grants = capability.NewStaticChecker(cfg.Capabilities.Grants).Grants()
	}

	if len(grants) == 0 {
		fmt.Println("no grants configured")
		return nil
	}
	for identity, caps := range grants {
		fmt.Printf("%s: %v\n", identity, caps)
	}
	return nil
}
