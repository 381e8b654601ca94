// =============================================================================
// passwd2json - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (passwd2json <passwd-file> <group-file>)
//   ├── convertCmd  (passwd2json convert)
//   ├── validateCmd (passwd2json validate)
//   └── versionCmd  (passwd2json version)
//
// The root command converts directly when given two paths, so a crontab
// entry does not need a subcommand.
//
// The root command is also responsible for:
//   1. Global flags (--config, --verbose, --log-level)
//   2. Loading the configuration
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/passwd2json/internal/config"
	"github.com/ginjaninja78/passwd2json/internal/logging"
	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// logLevel overrides the configured log level when set.
var logLevel string

// appConfig is the loaded configuration, available to every subcommand.
var appConfig *config.Config

// logger is the process-wide logger, set up in PersistentPreRunE.
var logger = zerolog.Nop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "passwd2json <passwd-file> <group-file>",
	Short: "Convert passwd and group tables into a JSON account document",
	Long: `passwd2json reads a passwd-format account table and a group table and
writes one pretty-printed JSON document describing each user:

  {
  	"root": {
  		"uid": "0",
  		"full_name": "root",
  		"groups": ["daemon"]
  	}
  }

Each run writes a new file named output-<epoch-millis>.txt in the output
directory. The document is built and checked in memory before anything is
written, so a failed run never leaves a partial file behind.

Example Usage:
  passwd2json /etc/passwd /etc/group
  passwd2json convert --output accounts.json /etc/passwd /etc/group
  passwd2json validate /etc/passwd /etc/group`,

	Args:              requireInputPaths,
	PersistentPreRunE: setUp,
	SilenceErrors:     true,
	SilenceUsage:      true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (optional unless set explicitly)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"Log level: debug, info, warn, error (overrides the config file)",
	)

	addConvertFlags(rootCmd)
}

// setUp loads the configuration and configures logging. It runs before
// every command; argument validation has already happened by then, so a
// missing path is reported before any file is opened.
func setUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logging.SetLevel(cfg.LogLevel)
	logger = logging.New(cfg.LogFormat, os.Stderr)
	appConfig = cfg

	return nil
}

// requireInputPaths rejects invocations with fewer than two input paths.
func requireInputPaths(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w (got %d)\n\nUsage:\n  %s", types.ErrInsufficientArguments, len(args), cmd.UseLine())
	}
	if len(args) > 2 {
		return fmt.Errorf("expected exactly 2 paths, got %d", len(args))
	}
	return nil
}
