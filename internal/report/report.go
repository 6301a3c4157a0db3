// Package report renders service-history exports for a category over a
// date range, as branded PDF or plain CSV.
package report

import "time"

// Row is one service entry in an export, already joined with its
// scooter's fleet code.
type Row struct {
	Date           time.Time
	ScooterID      string
	CurrentKm      int
	NextKm         int
	ServiceDetails string
}

// Data is everything an export needs.
type Data struct {
	CategoryName string
	From         time.Time
	To           time.Time
	Rows         []Row
}

const dateLayout = "02/01/2006"

func columnHeaders() []string {
	return []string{"Date", "Vehicle ID", "Current KM", "Next Service", "Service Details"}
}
