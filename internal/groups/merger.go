// =============================================================================
// passwd2json - Membership Merger
// =============================================================================
//
// Reads group-table lines and attaches group names to the accounts that are
// listed as members.
//
// LINE FORMAT:
//   groupname:password:gid:member1,member2,...
//
//   Lines with fewer than four fields have no member list and are skipped.
//   Members that do not exist in the account table are ignored.
//
// Merge never touches the record set it is given. It works on a copy and
// returns it, so the parse -> merge ordering is the only coupling between
// the two stages.
//
// =============================================================================

package groups

import (
	"strings"

	"github.com/ginjaninja78/passwd2json/internal/types"
)

const (
	fieldName    = 0
	fieldMembers = 3

	// MinFields is the fewest fields a group line needs to carry a member list.
	MinFields = 4
)

// MergeStats counts what the merger saw.
type MergeStats struct {
	// Lines is the number of group-table lines read.
	Lines int

	// Skipped is the number of lines without a member list.
	Skipped int

	// Memberships is the number of group names appended to accounts.
	Memberships int

	// UnknownMembers is the number of member entries with no matching account.
	UnknownMembers int
}

// Merge returns a copy of records with group memberships from lines applied.
//
// Groups are appended in the order the group lines appear. A user listed more
// than once on the same line receives that group once.
func Merge(records *types.RecordSet, lines []string) (*types.RecordSet, MergeStats) {
	merged := records.Clone()
	stats := MergeStats{Lines: len(lines)}

	for _, line := range lines {
		fields := strings.Split(line, ":")
		if len(fields) < MinFields {
			stats.Skipped++
			continue
		}

		group := fields[fieldName]
		seen := make(map[string]struct{})

		for _, member := range strings.Split(fields[fieldMembers], ",") {
			if _, dup := seen[member]; dup {
				continue
			}
			seen[member] = struct{}{}

			if merged.AppendGroup(member, group) {
				stats.Memberships++
			} else {
				stats.UnknownMembers++
			}
		}
	}

	return merged, stats
}
