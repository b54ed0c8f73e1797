// Package cli implements the deckgrid command-line interface.
//
// This package provides commands for composing deck manifests into layout
// documents, inspecting the color-scheme catalog, serving the layout engine
// over HTTP, and managing the layout document cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compose: Compose a TOML deck manifest into a layout document
//   - schemes: List, suggest, and inspect deck color schemes
//   - serve: Run the layout engine as an HTTP service
//   - cache: Manage the layout document cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/deckgrid/deckgrid/pkg/buildinfo"
	"github.com/deckgrid/deckgrid/pkg/cache"
	"github.com/deckgrid/deckgrid/pkg/labels"
	"github.com/deckgrid/deckgrid/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "deckgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
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
		Short:        "Deckgrid composes slide layouts from deck manifests",
		Long:         `Deckgrid is a deterministic slide layout engine: it turns TOML deck manifests into finalized layout documents with resolved typography, color stories, chart geometry, and annotations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.composeCommand())
	root.AddCommand(c.schemesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints full build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(buildinfo.String())
			return nil
		},
	}
}

// newRunner creates a pipeline runner for CLI use. The layout cache and the
// label-response cache share one backend; their keys are namespaced.
func (c *CLI) newRunner(noCache bool, labelsURL string) *pipeline.Runner {
	store := newCache(noCache)
	return pipeline.NewRunner(store, nil, newLabelEngine(labelsURL, store, c.Logger), c.Logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// newLabelEngine selects the annotation label engine. With a service URL the
// remote engine runs first, its responses are cached by request payload, and
// local formatting recovers failures; without one labels are formatted
// locally.
func newLabelEngine(labelsURL string, store cache.Cache, logger *log.Logger) labels.Engine {
	if labelsURL == "" {
		return labels.Local{}
	}
	remote := labels.WithCache(labels.NewRemote(labelsURL, nil), cache.WithHooks(store, "label"), nil)
	return labels.WithFallback(remote, labels.Local{}, logger)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/deckgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
