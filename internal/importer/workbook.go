package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the decoded tabular content of an uploaded spreadsheet:
// the header row plus every data row keyed by header.
type Workbook struct {
	Headers []string
	Rows    []Row
}

// DecodeWorkbook reads the first sheet of an .xlsx upload.
//
// Cells are read raw, so date cells arrive as serial day-count strings and
// ParseDate can apply the epoch conversion itself instead of trusting the
// sheet's display format. Fully empty rows are dropped.
func DecodeWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file: sheet %q has no rows", sheets[0])
	}

	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	wb := &Workbook{Headers: headers}
	for _, cells := range rows[1:] {
		if rowEmpty(cells) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" || i >= len(cells) {
				continue
			}
			row[h] = cells[i]
		}
		wb.Rows = append(wb.Rows, row)
	}

	return wb, nil
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
