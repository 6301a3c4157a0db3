package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV renders the same report as the PDF export, minus the branding,
// for staff who want to work the numbers in a spreadsheet.
func WriteCSV(w io.Writer, data Data) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columnHeaders()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range data.Rows {
		record := []string{
			row.Date.Format(dateLayout),
			row.ScooterID,
			strconv.Itoa(row.CurrentKm),
			strconv.Itoa(row.NextKm),
			row.ServiceDetails,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv report: %w", err)
	}
	return nil
}
