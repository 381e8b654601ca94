// =============================================================================
// passwd2json - Line Reader
// =============================================================================
//
// Reads a text file into memory as an ordered slice of lines. Both input
// tables (passwd and group) go through here before any parsing happens.
//
// Input sizes are bounded by the number of accounts on one host, so the
// whole file is loaded at once.
//
// =============================================================================

package linereader

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ginjaninja78/passwd2json/internal/types"
)

// MaxLineLength is the longest line the reader accepts.
const MaxLineLength = 1024 * 1024

// ReadLines reads the file at path and returns its lines in order, with the
// trailing "\n" or "\r\n" removed.
//
// RETURNS:
//   - The lines of the file (empty, not nil, for an empty file).
//   - An error matching types.ErrFileUnreadable if the file cannot be opened
//     or read.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrFileUnreadable, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", types.ErrFileUnreadable, path, err)
	}

	return lines, nil
}
