// =============================================================================
// passwd2json - Account Parser
// =============================================================================
//
// Turns account-table lines into a record set keyed by username.
//
// LINE FORMAT:
//   name:password:uid:gid:full-name:home:shell
//
//   Only field 0 (username), field 2 (uid) and field 4 (full name) are used.
//   Anything past field 4 is ignored, but fields 0-4 must all be present.
//   The username must be valid UTF-8 because it becomes a JSON key.
//
// DUPLICATES:
//   A later line for the same username replaces the earlier record entirely.
//   Groups are merged in a separate pass after parsing, so nothing is lost.
//
// =============================================================================

package accounts

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/passwd2json/internal/types"
)

// Field positions within an account line.
const (
	fieldUsername = 0
	fieldUID      = 2
	fieldFullName = 4

	// MinFields is the fewest colon-separated fields an account line may have.
	MinFields = 5
)

// MalformedRecordError describes an account line that could not be parsed.
type MalformedRecordError struct {
	// Line is the 1-based line number in the account table.
	Line int

	// Fields is the number of fields the line actually had.
	Fields int

	// Raw is the offending line.
	Raw string

	// Reason overrides the field-count message when the line has enough
	// fields but is still unusable.
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Raw)
	}
	return fmt.Sprintf("line %d: expected at least %d fields, got %d: %q",
		e.Line, MinFields, e.Fields, e.Raw)
}

// Is makes errors.Is(err, types.ErrMalformedRecord) hold.
func (e *MalformedRecordError) Is(target error) bool {
	return target == types.ErrMalformedRecord
}

// Parse builds a record set from account-table lines.
//
// PARAMETERS:
//   - lines: the account table, one record per line.
//
// RETURNS:
//   - The record set, in first-seen username order.
//   - A *MalformedRecordError for the first line with fewer than MinFields
//     fields or a username that is not valid UTF-8. No partial set is
//     returned in that case.
func Parse(lines []string) (*types.RecordSet, error) {
	records := types.NewRecordSet()

	for i, line := range lines {
		fields := strings.Split(line, ":")
		if len(fields) < MinFields {
			return nil, &MalformedRecordError{
				Line:   i + 1,
				Fields: len(fields),
				Raw:    line,
			}
		}

		// JSON output cannot carry invalid UTF-8, and replacing the bad bytes
		// could make two usernames collide as the same key.
		if !utf8.ValidString(fields[fieldUsername]) {
			return nil, &MalformedRecordError{
				Line:   i + 1,
				Fields: len(fields),
				Raw:    line,
				Reason: "username is not valid UTF-8",
			}
		}

		records.Put(types.AccountRecord{
			Username: fields[fieldUsername],
			UID:      fields[fieldUID],
			FullName: fields[fieldFullName],
			Groups:   []string{},
		})
	}

	return records, nil
}
