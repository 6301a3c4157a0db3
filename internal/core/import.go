package core

import (
	"context"

	"github.com/la-rentals/fleet/internal/importer"
)

// ImportResult is the response body for a spreadsheet import: how many
// records landed plus the pipeline's per-row accounting. Error is set
// when the batch produced nothing usable; that is still a 200 response
// because the file itself was processed.
type ImportResult struct {
	Inserted   int64                `json:"inserted"`
	TotalRows  int                  `json:"total_rows"`
	Accepted   int                  `json:"accepted"`
	Rejected   int                  `json:"rejected"`
	Earliest   string               `json:"earliest,omitempty"`
	Latest     string               `json:"latest,omitempty"`
	Rejections []importer.Rejection `json:"rejections,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// ImportHistory decodes an uploaded .xlsx workbook, validates its headers,
// runs every row through the import pipeline, and bulk-inserts the
// accepted records. Row rejections are reported, not fatal; a file whose
// headers do not match is rejected outright with no partial insert.
//
// The scooter's odometer fields roll forward to the newest imported
// record so its derived status reflects the imported history.
func (s *Service) ImportHistory(ctx context.Context, scooterID string, file []byte) (*ImportResult, error) {
	sc, err := s.store.GetScooter(ctx, scooterID)
	if err != nil {
		return nil, err
	}

	wb, err := importer.DecodeWorkbook(file)
	if err != nil {
		return nil, err
	}

	pipeline, err := importer.NewPipeline(wb.Headers)
	if err != nil {
		return nil, err
	}

	records, summary := pipeline.ProcessBatch(wb.Rows, sc.ID)

	result := &ImportResult{
		TotalRows:  summary.TotalRows,
		Accepted:   summary.Accepted,
		Rejected:   summary.Rejected,
		Rejections: summary.Rejections,
	}
	if summary.Earliest != nil {
		result.Earliest = summary.Earliest.Format("2006-01-02")
	}
	if summary.Latest != nil {
		result.Latest = summary.Latest.Format("2006-01-02")
	}
	if err := summary.Err(); err != nil {
		result.Error = MapError(err).Message
		return result, nil
	}

	inserted, err := s.store.BulkInsertServices(ctx, records)
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted

	// records are sorted ascending by date, so the last one is current.
	latest := records[len(records)-1]
	if err := s.store.UpdateScooterKm(ctx, sc.ID, latest.CurrentKm, latest.NextKm); err != nil {
		return nil, err
	}

	return result, nil
}
