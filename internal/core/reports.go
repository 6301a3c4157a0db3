package core

import (
	"context"
	"time"

	"github.com/la-rentals/fleet/internal/report"
)

// BuildReport assembles the service-history export data for a category
// over [from, to]. Rows come back newest first, ready for rendering.
func (s *Service) BuildReport(ctx context.Context, categoryID string, from, to time.Time) (*report.Data, error) {
	cat, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	services, err := s.store.ListServicesByCategory(ctx, categoryID, from, to)
	if err != nil {
		return nil, err
	}

	data := &report.Data{
		CategoryName: cat.Name,
		From:         from,
		To:           to,
		Rows:         make([]report.Row, 0, len(services)),
	}
	for _, svc := range services {
		data.Rows = append(data.Rows, report.Row{
			Date:           svc.ServiceDate,
			ScooterID:      svc.ScooterID,
			CurrentKm:      svc.CurrentKm,
			NextKm:         svc.NextKm,
			ServiceDetails: svc.ServiceDetails,
		})
	}
	return data, nil
}
