// =============================================================================
// passwd2json - File Manager Utility
// =============================================================================
//
// This module provides the file handling around the output document:
//   - Output file naming from a placeholder pattern
//   - Atomic writes (temp file + rename)
//   - Retention cleanup of outputs from earlier scheduled runs, limited to
//     names the output pattern can produce
//
// ATOMIC WRITES:
//   Content is written to a hidden, uuid-named temp file in the destination
//   directory, synced, and renamed into place. A crash or a full disk leaves
//   at most a temp file behind, never a truncated file under the final name.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles output files for the converter.
type FileManager struct {
	// OutputDir is the directory output files are created in.
	OutputDir string

	// FileNameFormat is the output file name pattern. See GenerateOutputFileName.
	FileNameFormat string

	// Now returns the current time. Tests replace it for stable names.
	Now func() time.Time
}

// NewFileManager creates a FileManager for the given directory and pattern.
func NewFileManager(outputDir, fileNameFormat string) *FileManager {
	return &FileManager{
		OutputDir:      outputDir,
		FileNameFormat: fileNameFormat,
		Now:            time.Now,
	}
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the file name pattern.
//
// PLACEHOLDERS:
//   {millis}    - milliseconds since the Unix epoch
//   {timestamp} - YYYYMMDD_HHMMSS
//   {date}      - YYYYMMDD
//   {uuid}      - a random UUID
//
// EXAMPLE:
//   format: "output-{millis}.txt"
//   output: "output-1760870400000.txt"
func (fm *FileManager) GenerateOutputFileName() string {
	now := fm.Now()

	replacer := strings.NewReplacer(
		"{millis}", strconv.FormatInt(now.UnixMilli(), 10),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{uuid}", uuid.New().String(),
	)

	return replacer.Replace(fm.FileNameFormat)
}

// placeholderPatterns match what each placeholder expands to.
var placeholderPatterns = map[string]string{
	"{millis}":    `\d+`,
	"{timestamp}": `\d{8}_\d{6}`,
	"{date}":      `\d{8}`,
	"{uuid}":      `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`,
}

var placeholderRegexp = regexp.MustCompile(`\{(millis|timestamp|date|uuid)\}`)

// OutputPattern compiles the file name pattern into a regular expression
// that matches only names GenerateOutputFileName can produce. Text outside
// the placeholders must match literally.
func (fm *FileManager) OutputPattern() *regexp.Regexp {
	var pattern strings.Builder
	pattern.WriteString("^")

	last := 0
	for _, loc := range placeholderRegexp.FindAllStringIndex(fm.FileNameFormat, -1) {
		pattern.WriteString(regexp.QuoteMeta(fm.FileNameFormat[last:loc[0]]))
		pattern.WriteString(placeholderPatterns[fm.FileNameFormat[loc[0]:loc[1]]])
		last = loc[1]
	}
	pattern.WriteString(regexp.QuoteMeta(fm.FileNameFormat[last:]))
	pattern.WriteString("$")

	return regexp.MustCompile(pattern.String())
}

// =============================================================================
// WRITING
// =============================================================================

// WriteOutput writes data to a newly named file in the output directory.
//
// RETURNS:
//   - The path of the written file.
//   - An error matching types.ErrOutputWrite if the file cannot be written.
func (fm *FileManager) WriteOutput(data []byte) (string, error) {
	outputPath := filepath.Join(fm.OutputDir, fm.GenerateOutputFileName())

	if err := WriteFileAtomic(outputPath, data); err != nil {
		return "", err
	}

	return outputPath, nil
}

// WriteFileAtomic writes data to path through a temp file in the same
// directory. On failure the temp file is removed and path is untouched.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", types.ErrOutputWrite, tmpPath, err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = file.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %w", types.ErrOutputWrite, tmpPath, err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", types.ErrOutputWrite, tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", types.ErrOutputWrite, tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", types.ErrOutputWrite, path, err)
	}

	return nil
}

// =============================================================================
// RETENTION
// =============================================================================

// CleanOldOutputs removes files in the output directory whose names match
// the whole output pattern and were last modified more than maxAge ago. The file named
// keep is never removed. Subdirectories are not visited.
//
// RETURNS:
//   - The number of files removed.
//   - An error if the directory cannot be listed or a file cannot be removed.
func (fm *FileManager) CleanOldOutputs(maxAge time.Duration, keep string) (int, error) {
	pattern := fm.OutputPattern()

	entries, err := os.ReadDir(fm.OutputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to list output directory: %w", err)
	}

	cutoff := fm.Now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}

		path := filepath.Join(fm.OutputDir, entry.Name())
		if keep != "" && filepath.Clean(path) == filepath.Clean(keep) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", path, err)
			}
			removed++
		}
	}

	return removed, nil
}
