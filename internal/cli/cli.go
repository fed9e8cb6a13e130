// Package cli implements the orgcanvas command-line interface.
//
// This package provides commands for laying out org charts, arranging them
// from a saved hierarchy, rendering them to SVG/PNG/DOT, managing the chart
// store, serving the HTTP API, and editing charts interactively. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute tree layout positions for a chart file
//   - arrange: Replay a saved hierarchy or derive one from positions
//   - render: Generate SVG, PNG, or DOT output
//   - charts: Manage the chart store (list, save, load, delete)
//   - serve: Run the HTTP API server
//   - edit: Open the interactive canvas editor
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgcanvas/pkg/buildinfo"
	"github.com/matzehuels/orgcanvas/pkg/config"
	"github.com/matzehuels/orgcanvas/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "orgcanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Orgcanvas lays out and renders org charts",
		Long:         `Orgcanvas is a CLI tool for laying out organization charts on an infinite canvas, arranging them from saved hierarchies, and rendering them as SVG, PNG, or Graphviz diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/orgcanvas/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.chartsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store Factories
// =============================================================================

// loadConfig reads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newStore opens the snapshot store selected by the configuration, wrapped
// with observability instrumentation.
func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		st = store.NewMemoryStore()
	case config.BackendRedis:
		st, err = store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
	case config.BackendMongo:
		st, err = store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.Mongo.URI,
			Database:   cfg.Store.Mongo.Database,
			Collection: cfg.Store.Mongo.Collection,
		})
	default:
		st, err = store.NewFileStore(cfg.Store.Dir)
	}
	if err != nil {
		return nil, err
	}
	return store.Instrument(st), nil
}
