// Package cli implements the case-capture command-line interface.
//
// case-capture is a single cobra command: it takes the root URL of a site
// and a slug, discovers or accepts the pages to capture, and runs the
// capture pipeline against one headless browser. Progress is printed to
// stdout as emoji-prefixed status lines; logs go to stderr.
//
// # Logging
//
// --verbose (-v) switches the logger to debug level. The logger is passed
// through context.Context to the command helpers and handed to every
// pipeline stage.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/msgwebdev-git/goqode-sub000/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "case-capture"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the command.
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

// RootCommand creates the case-capture command.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.captureCommand()
	root.Version = buildinfo.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetVersionTemplate(buildinfo.Template())
	return root
}
