// Package cli implements the printcards command line.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/printcards/internal/config"
	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/version"
)

const defaultConfigPath = "printcards.yaml"

// app carries the global flags and the logger shared by every command.
type app struct {
	configPath string
	verbose    bool
	debug      bool
	log        *logger.Logger
	stdin      *bufio.Reader
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.New(logger.WithPrefix("[printcards] "))}

	root := &cobra.Command{
		Use:          "printcards",
		Short:        "Print double-sided flashcards from a CSV deck",
		Long:         `printcards lays out flashcards on standard paper so that, printed double-sided, every answer lands on the back of its question.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log.SetVerbose(a.verbose || a.debug)
			if a.debug {
				a.log.SetLevel(logger.LevelTrace)
			}
			a.log.Debug("Verbose logging enabled")
		},
	}

	root.SetVersionTemplate(version.Template())
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML or TOML config file (default "+defaultConfigPath+" if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug mode with trace logging")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newLayoutCmd(a))
	root.AddCommand(newWizardCmd(a))
	root.AddCommand(newMergeCmd(a))
	root.AddCommand(newPreviewCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newAnkiCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newVersionCmd(a))

	return root
}

// Execute runs the CLI until it finishes or ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// loadConfig reads the file given with --config, or the default file when it
// exists, or falls back to built-in defaults.
func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		a.log.Debug("Loading config from %s", a.configPath)
		return config.Load(a.configPath)
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		a.log.Debug("Loading config from %s", defaultConfigPath)
	}
	return config.LoadOrDefault(defaultConfigPath)
}

// input returns one buffered reader over the command's stdin so repeated
// prompts never lose buffered answers.
func (a *app) input(cmd *cobra.Command) *bufio.Reader {
	if a.stdin == nil {
		a.stdin = bufio.NewReader(cmd.InOrStdin())
	}
	return a.stdin
}
