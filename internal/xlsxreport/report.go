// =============================================================================
// passwd2json - XLSX Account Report
// =============================================================================
//
// Writes the merged record set to a single-sheet workbook, so the same data
// can be reviewed in a spreadsheet next to the JSON output.
//
// SHEET LAYOUT ("Accounts"):
//   | Username | UID | Full Name | Groups           |
//   | root     | 0   | root      | daemon, wheel    |
//
// All cells are written as text; UIDs keep their original formatting.
//
// =============================================================================

package xlsxreport

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/ginjaninja78/passwd2json/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the only sheet in the report.
const SheetName = "Accounts"

// GroupSeparator joins group names within one cell.
const GroupSeparator = ", "

// Headers are the column titles in row 1.
var Headers = []string{"Username", "UID", "Full Name", "Groups"}

// Write saves records as a workbook at path. The workbook is built in
// memory and written atomically.
func Write(path string, records []types.AccountRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		row := []interface{}{
			record.Username,
			record.UID,
			record.FullName,
			strings.Join(record.Groups, GroupSeparator),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", record.Username, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "D", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("%w: encode workbook: %w", types.ErrOutputWrite, err)
	}

	return utils.WriteFileAtomic(path, buffer.Bytes())
}
