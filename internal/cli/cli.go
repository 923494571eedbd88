// Package cli implements the poetryreqs command-line interface.
//
// The root command is the converter itself:
//
//	poetryreqs                          # pyproject.toml -> requirements.txt
//	poetryreqs path/to/pyproject.toml -o build/requirements.txt
//	poetryreqs -o - | pip install -r /dev/stdin
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed to commands through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/poetryreqs/pkg/buildinfo"
	"github.com/matzehuels/poetryreqs/pkg/deps/python"
)

// appName is the application name used in help and completion text.
const appName = "poetryreqs"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	opts := convertOpts{
		manifest: python.DefaultManifest,
		output:   python.DefaultRequirements,
	}
	var verbose bool

	root := &cobra.Command{
		Use:   appName + " [pyproject.toml]",
		Short: "Convert Poetry dependencies to a requirements.txt",
		Long: `poetryreqs reads the [tool.poetry.dependencies] table of a pyproject.toml
and writes the same dependencies as a pip requirements file.

The python entry is left out. Version strings are copied as written.

Examples:
  poetryreqs                                     # pyproject.toml -> requirements.txt
  poetryreqs backend/pyproject.toml -o reqs.txt  # explicit paths
  poetryreqs -o -                                # print to stdout`,
		Version:       buildinfo.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.manifest = args[0]
			}
			return runConvert(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVarP(&opts.output, "output", "o", opts.output, `output file ("-" for stdout)`)

	root.AddCommand(c.completionCommand())

	return root
}
