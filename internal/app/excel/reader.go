// Package excel reads raw schedule rows from and writes the display
// projection back to xlsx workbooks.
package excel

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var ErrNoSheets = errors.New("workbook has no sheets")

// ReadRows returns the raw cell values of the first sheet, positionally, with
// no header assumption. Cells come back as strings exactly as excelize
// renders them; interpretation is entirely the normalizer's concern.
func ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			zap.L().Warn("Failed to close workbook.", zap.Error(cerr))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	zap.L().Debug("Workbook loaded.", zap.String("path", path), zap.Int("rows", len(rows)))
	return rows, nil
}
