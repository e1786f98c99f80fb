package source

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"medrag/internal/normalize"
)

// OpenWorkbook reads every sheet of an Excel workbook. Sheets are read
// without a header row; a sheet that fails to read is logged and left out.
func OpenWorkbook(path string) (*Set, error) {
	logger := slog.Default().With("component", "source", "path", path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	tables := make(map[string][]normalize.Row)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			logger.Warn("cannot read sheet", "sheet", sheet, "err", err)
			continue
		}
		tables[sheet] = toRows(rows)
	}
	logger.Info("workbook loaded", "sheets", len(tables))
	return NewSet(tables).WithLogger(logger), nil
}

func toRows(cells [][]string) []normalize.Row {
	rows := make([]normalize.Row, len(cells))
	for i, line := range cells {
		row := make(normalize.Row, len(line))
		for j, c := range line {
			row[j] = c
		}
		rows[i] = row
	}
	return rows
}
