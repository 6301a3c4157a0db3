// Package importer converts uploaded spreadsheet rows into validated
// service records. Bad rows are reported and skipped, never fatal: a file
// with 40 good rows and 3 broken ones still imports the 40. Only a missing
// required column rejects the whole file, and that is detected before any
// row is touched.
package importer

import (
	"sort"
	"strings"
	"time"
)

// Row is one spreadsheet data row keyed by its header cell. Values keep
// whatever type the decoder produced (string, float64, time.Time).
type Row map[string]any

// ServiceRecord is a validated, canonical service history entry.
// Every record produced by the pipeline satisfies NextKm > CurrentKm >= 0.
type ServiceRecord struct {
	ScooterID      string    `json:"scooterId"`
	ServiceDate    time.Time `json:"serviceDate"`
	CurrentKm      int       `json:"currentKm"`
	NextKm         int       `json:"nextKm"`
	ServiceDetails string    `json:"serviceDetails"`
}

// Rejection records why a single row was skipped.
type Rejection struct {
	Row    int    `json:"row"` // zero-based index into the input rows
	Reason string `json:"reason"`
}

// Summary reports the outcome of a batch import.
type Summary struct {
	TotalRows  int         `json:"totalRows"`
	Accepted   int         `json:"accepted"`
	Rejected   int         `json:"rejected"`
	Earliest   *time.Time  `json:"earliest,omitempty"` // nil when nothing accepted
	Latest     *time.Time  `json:"latest,omitempty"`
	Rejections []Rejection `json:"rejections,omitempty"`
}

// Err returns ErrNoValidRecords when the batch produced nothing usable.
// This is a reportable condition for the caller, not a pipeline failure.
func (s Summary) Err() error {
	if s.Accepted == 0 {
		return ErrNoValidRecords
	}
	return nil
}

// logicalColumn is a column the import needs, with the header fragments
// that satisfy it. Matching is case-insensitive substring against the
// uploaded header, so "SERVICE DATE", "MILAGE (KM)" and "Next Service At"
// all resolve.
type logicalColumn struct {
	name    string
	aliases []string
}

var (
	colServiceDate = logicalColumn{"service date", []string{"service date", "date"}}
	colCurrentKm   = logicalColumn{"current km", []string{"milage", "mileage", "current km", "km"}}
	colNextKm      = logicalColumn{"next service km", []string{"next service", "next km"}}
	colDetails     = logicalColumn{"service details", []string{"done", "details", "work"}}
)

// requiredColumns must all resolve before any row is processed.
// Details is optional; an absent details column just yields empty text.
var requiredColumns = []logicalColumn{colServiceDate, colCurrentKm, colNextKm}

// HeaderCheck is the result of validating an uploaded file's header row.
type HeaderCheck struct {
	Valid   bool     `json:"isValid"`
	Missing []string `json:"missingColumns,omitempty"`
}

// ValidateHeaders checks that every required logical column has a matching
// header. Callers must reject the whole file before row processing when
// Valid is false.
func ValidateHeaders(headers []string) HeaderCheck {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := resolveHeader(headers, col); !ok {
			missing = append(missing, col.name)
		}
	}
	return HeaderCheck{Valid: len(missing) == 0, Missing: missing}
}

// resolveHeader finds the first uploaded header satisfying a logical column.
func resolveHeader(headers []string, col logicalColumn) (string, bool) {
	for _, alias := range col.aliases {
		for _, h := range headers {
			if strings.Contains(strings.ToLower(strings.TrimSpace(h)), alias) {
				return h, true
			}
		}
	}
	return "", false
}

// Pipeline validates rows against a resolved header mapping.
// It holds no mutable state; one Pipeline may process many batches.
type Pipeline struct {
	dateCol    string
	currentCol string
	nextCol    string
	detailsCol string // empty when the file has no details column
}

// NewPipeline resolves the header mapping for an uploaded file.
// Returns ErrMissingColumns (file-scoped, fatal) when a required logical
// column has no matching header.
func NewPipeline(headers []string) (*Pipeline, error) {
	if check := ValidateHeaders(headers); !check.Valid {
		return nil, missingColumnsError(check.Missing)
	}
	dateCol, _ := resolveHeader(headers, colServiceDate)
	currentCol, _ := resolveHeader(headers, colCurrentKm)
	nextCol, _ := resolveHeader(headers, colNextKm)
	detailsCol, _ := resolveHeader(headers, colDetails)
	return &Pipeline{
		dateCol:    dateCol,
		currentCol: currentCol,
		nextCol:    nextCol,
		detailsCol: detailsCol,
	}, nil
}

// NormalizeRow validates one row into a canonical ServiceRecord.
// The returned error names the violated rule; the caller records it and
// moves on. Records are rejected, never silently corrected.
func (p *Pipeline) NormalizeRow(row Row, scooterID string) (*ServiceRecord, error) {
	currentKm, err := ParseKilometer(row[p.currentCol])
	if err != nil {
		return nil, err
	}
	nextKm, err := ParseKilometer(row[p.nextCol])
	if err != nil {
		return nil, err
	}
	serviceDate, err := ParseDate(row[p.dateCol])
	if err != nil {
		return nil, err
	}
	if nextKm <= currentKm {
		return nil, cellError(ErrKilometerOrder, nextKm)
	}

	details := ""
	if p.detailsCol != "" {
		if v, ok := row[p.detailsCol].(string); ok {
			details = collapseWhitespace(v)
		}
	}

	return &ServiceRecord{
		ScooterID:      scooterID,
		ServiceDate:    serviceDate,
		CurrentKm:      currentKm,
		NextKm:         nextKm,
		ServiceDetails: details,
	}, nil
}

// ProcessBatch runs every row through NormalizeRow, partitioning accepted
// and rejected. Accepted records come back sorted ascending by service date
// so history is persisted in temporal order regardless of upload order.
func (p *Pipeline) ProcessBatch(rows []Row, scooterID string) ([]ServiceRecord, Summary) {
	summary := Summary{TotalRows: len(rows)}
	records := make([]ServiceRecord, 0, len(rows))

	for i, row := range rows {
		rec, err := p.NormalizeRow(row, scooterID)
		if err != nil {
			summary.Rejected++
			summary.Rejections = append(summary.Rejections, Rejection{Row: i, Reason: err.Error()})
			continue
		}
		summary.Accepted++
		records = append(records, *rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ServiceDate.Before(records[j].ServiceDate)
	})

	if len(records) > 0 {
		earliest := records[0].ServiceDate
		latest := records[len(records)-1].ServiceDate
		summary.Earliest = &earliest
		summary.Latest = &latest
	}

	return records, summary
}
