// =============================================================================
// passwd2json - Main Entry Point
// =============================================================================
//
// passwd2json converts a passwd-format account table and a group table into
// one JSON document describing every user, their uid, full name and groups.
// It is meant to be run periodically (e.g. from cron); each run writes a new
// timestamped output file.
//
// USAGE:
//   passwd2json <passwd-file> <group-file>          - Convert and write output
//   passwd2json convert <passwd-file> <group-file>  - Same, as a subcommand
//   passwd2json validate <passwd-file> <group-file> - Check inputs, write nothing
//   passwd2json version                             - Display the version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : the conversion pipeline
//   - pkg/utils/ : output file handling
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/passwd2json/cmd"
)

func main() {
	cmd.Execute()
}
