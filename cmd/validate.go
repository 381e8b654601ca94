// =============================================================================
// passwd2json - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   passwd2json validate <passwd-file> <group-file>
//
// Runs every stage up to the output check and prints what a real run would
// produce. No files are written.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/passwd2json/internal/converter"
	"github.com/ginjaninja78/passwd2json/internal/logging"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <passwd-file> <group-file>",
	Short: "Check both tables without writing any output",
	Args:  requireInputPaths,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := converter.New(converter.Options{
			PasswdPath: args[0],
			GroupPath:  args[1],
		}, appConfig, logging.NewAdapter(logger))
		if err != nil {
			return err
		}

		result := c.Check()
		if result.Error != nil {
			return result.Error
		}

		printSummary(cmd, result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// printSummary writes the run statistics in aligned columns.
func printSummary(cmd *cobra.Command, result converter.Result) {
	out := cmd.OutOrStdout()
	stats := result.Stats

	fmt.Fprintln(out, "Inputs are valid")
	fmt.Fprintf(out, "  Account table:       %s\n", result.PasswdPath)
	fmt.Fprintf(out, "  Group table:         %s\n", result.GroupPath)
	fmt.Fprintf(out, "  Account lines:       %d\n", stats.AccountLines)
	fmt.Fprintf(out, "  Accounts:            %d\n", stats.Accounts)
	fmt.Fprintf(out, "  Duplicate usernames: %d\n", stats.DuplicateUsernames)
	fmt.Fprintf(out, "  Group lines:         %d\n", stats.Groups.Lines)
	fmt.Fprintf(out, "  Without members:     %d\n", stats.Groups.Skipped)
	fmt.Fprintf(out, "  Memberships:         %d\n", stats.Groups.Memberships)
	fmt.Fprintf(out, "  Unknown members:     %d\n", stats.Groups.UnknownMembers)
	fmt.Fprintf(out, "  Document size:       %d bytes\n", len(result.Document)+1)
}
