// Package cli implements the antcheck command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/antcheck/pkg/antenna"
	"github.com/matzehuels/antcheck/pkg/buildinfo"
	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
	dio "github.com/matzehuels/antcheck/pkg/io"
	"github.com/matzehuels/antcheck/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "antcheck"

	// defaultReport is the report file written by check when neither a flag
	// nor the config file names one.
	defaultReport = "antenna.rpt"
)

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
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string

	// spinner is the running progress indicator, if any.
	spinner *Spinner
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
		Short:        "antcheck checks routed nets against process antenna rules",
		Long:         `antcheck reads a routed design, computes partial and cumulative antenna ratios for every gate, and reports the nets that break the layer rules.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := &logHooks{logger: c.Logger, onNet: c.netChecked}
			observability.SetCheckHooks(hooks)
			observability.SetLoadHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+configFile+" or the user config dir)")

	// Register all subcommands
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.maxLengthCommand())
	root.AddCommand(c.cutLengthCommand())
	root.AddCommand(c.diodesCommand())
	root.AddCommand(c.longestWireCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// netChecked updates the running spinner with the number of checked nets.
func (c *CLI) netChecked(checked int) {
	if c.spinner != nil {
		c.spinner.SetMessage("Checked " + strconv.Itoa(checked) + " nets...")
	}
}

// startSpinner starts a spinner that receives net progress until stopped.
func (c *CLI) startSpinner(ctx context.Context, message string) *Spinner {
	c.spinner = newSpinnerWithContext(ctx, message)
	c.spinner.Start()
	return c.spinner
}

// =============================================================================
// Design Loading
// =============================================================================

// loadDesign reads a design file and logs how long it took.
func (c *CLI) loadDesign(ctx context.Context, path string) (*design.Design, error) {
	prog := newProgress(c.Logger)
	d, err := dio.ImportDesign(ctx, path)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + path + " (" + strconv.Itoa(len(d.Nets)) + " nets)")
	return d, nil
}

// newChecker loads a design and builds a checker logging through the CLI
// logger.
func (c *CLI) newChecker(ctx context.Context, path string) (*antenna.Checker, *design.Design, error) {
	d, err := c.loadDesign(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return antenna.New(d, antenna.WithLogger(c.Logger)), d, nil
}

// parseLevel parses a routing level argument.
func parseLevel(s string) (int, error) {
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidLevel, err, "routing level %q is not a number", s)
	}
	if err := errs.ValidateRoutingLevel(level); err != nil {
		return 0, err
	}
	return level, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/antcheck/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
