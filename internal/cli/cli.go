// Package cli implements the gfagraph command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gfagraph/pkg/buildinfo"
	"github.com/matzehuels/gfagraph/pkg/config"
	"github.com/matzehuels/gfagraph/pkg/graph"
	gfaio "github.com/matzehuels/gfagraph/pkg/io"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gfagraph"

	// stdinPath reads the input from standard input.
	stdinPath = "-"
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
	Config config.Config

	configPath string
	permissive bool
	version    string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gfagraph reads, checks and draws GFA assembly graphs",
		Long: `gfagraph is a CLI tool for GFA1 and GFA2 files. It parses every line into a typed
record, resolves the references between records and reports what is missing.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: search ./gfagraph.toml, then the user config dir)")
	flags.BoolVar(&c.permissive, "permissive", false, "keep malformed values and report them on access")
	flags.StringVar(&c.version, "gfa-version", "", "force the GFA version (1 or 2)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	var (
		cfg  config.Config
		path string
		err  error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
		path = c.configPath
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("permissive") && c.permissive {
		cfg.Validation = "permissive"
	}
	if flags.Changed("gfa-version") {
		cfg.Version = c.version
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// readOptions builds reader options from the loaded config.
func (c *CLI) readOptions(path string) (gfaio.Options, error) {
	validation, err := c.Config.RecordValidation()
	if err != nil {
		return gfaio.Options{}, err
	}
	version, err := c.Config.GFAVersion()
	if err != nil {
		return gfaio.Options{}, err
	}
	return gfaio.Options{
		Validation: validation,
		Version:    version,
		Source:     path,
		Logger:     c.Logger,
	}, nil
}

// loadGraph reads the GFA file at path, or standard input for "-".
func (c *CLI) loadGraph(ctx context.Context, path string, keepGoing bool) (*graph.Graph, error) {
	opts, err := c.readOptions(path)
	if err != nil {
		return nil, err
	}
	opts.KeepGoing = keepGoing

	timer := startTimer(loggerFromContext(ctx))
	var g *graph.Graph
	if path == stdinPath {
		opts.Source = "<stdin>"
		g, err = gfaio.ReadGFA(ctx, os.Stdin, opts)
	} else {
		g, err = gfaio.ImportGFA(ctx, path, opts)
	}
	if g != nil {
		timer.done("read graph", "source", opts.Source, "records", g.Len(), "placeholders", len(g.Placeholders()))
	}
	return g, err
}

// openOutput returns the writer for path, or w when path is empty.
func openOutput(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
