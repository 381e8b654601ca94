// =============================================================================
// passwd2json - Convert Command
// =============================================================================
//
// COMMAND USAGE:
//   passwd2json convert [flags] <passwd-file> <group-file>
//
// FLAGS:
//   --output      : Write to this exact path instead of a generated name
//   --output-dir  : Directory for generated output names
//   --dry-run     : Print the JSON to stdout and write nothing
//   --sort-keys   : Sort usernames instead of keeping account-table order
//   --xlsx        : Also write an XLSX report to this path
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/passwd2json/internal/config"
	"github.com/ginjaninja78/passwd2json/internal/converter"
	"github.com/ginjaninja78/passwd2json/internal/logging"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	outputPath string
	outputDir  string
	dryRun     bool
	sortKeys   bool
	xlsxPath   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <passwd-file> <group-file>",
	Short: "Convert the account and group tables into a JSON file",
	Long: `The convert command runs the full pipeline:

  1. Read both tables
  2. Parse the account table (username, uid, full name)
  3. Attach group memberships from the group table
  4. Render and check the JSON document
  5. Write it to output-<epoch-millis>.txt (or --output)

Any failure aborts the run with a non-zero exit status.`,
	Args: requireInputPaths,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)
}

// addConvertFlags registers the conversion flags on cmd. The root command
// and the convert subcommand share them.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the JSON to this path instead of a generated file name")
	cmd.Flags().StringVar(&outputDir, "output-dir", "",
		"Directory for generated output files (overrides output_dir)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Print the JSON to stdout and write no files")
	cmd.Flags().BoolVar(&sortKeys, "sort-keys", false,
		"Sort usernames in the output (overrides key_order)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "",
		"Also write an XLSX account report to this path (overrides xlsx_report)")
}

// applyConvertFlags copies flag overrides onto cfg.
func applyConvertFlags(cfg *config.Config) error {
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if sortKeys {
		cfg.KeyOrder = config.KeyOrderSorted
	}
	if xlsxPath != "" {
		cfg.XLSXReport = xlsxPath
	}
	return cfg.Validate()
}

// runConvert is the main function behind the root and convert commands.
func runConvert(cmd *cobra.Command, args []string) error {
	if err := applyConvertFlags(appConfig); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	c, err := converter.New(converter.Options{
		PasswdPath: args[0],
		GroupPath:  args[1],
		OutputPath: outputPath,
		DryRun:     dryRun,
	}, appConfig, logging.NewAdapter(logger))
	if err != nil {
		return err
	}

	result := c.Run()
	if result.Error != nil {
		return result.Error
	}

	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), string(result.Document))
		return nil
	}

	logger.Info().
		Str("output", result.OutputFile).
		Int("accounts", result.Stats.Accounts).
		Int("memberships", result.Stats.Groups.Memberships).
		Int("bytes", result.Stats.BytesWritten).
		Dur("elapsed", result.Stats.ProcessingTime).
		Msg("conversion complete")

	fmt.Fprintln(cmd.OutOrStdout(), result.OutputFile)
	return nil
}
