package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/la-rentals/fleet/internal/report"
)

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	data, err := s.buildReport(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="service-history.pdf"`)
	if err := report.WritePDF(w, *data); err != nil {
		s.respondError(w, r, err)
	}
}

func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := s.buildReport(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="service-history.csv"`)
	if err := report.WriteCSV(w, *data); err != nil {
		s.respondError(w, r, err)
	}
}

func (s *Server) buildReport(r *http.Request) (*report.Data, error) {
	from, to, err := parseDateRange(r)
	if err != nil {
		return nil, err
	}
	return s.service.BuildReport(r.Context(), chi.URLParam(r, "categoryID"), from, to)
}

// parseDateRange reads the optional from/to query params (YYYY-MM-DD).
// Missing values default to the last twelve months.
func parseDateRange(r *http.Request) (from, to time.Time, err error) {
	now := time.Now().UTC()
	from = now.AddDate(-1, 0, 0)
	to = now

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse(serviceDateLayout, raw)
		if err != nil {
			return from, to, fmt.Errorf("%w: invalid from date %q", errBadRequest, raw)
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = time.Parse(serviceDateLayout, raw)
		if err != nil {
			return from, to, fmt.Errorf("%w: invalid to date %q", errBadRequest, raw)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("%w: to date is before from date", errBadRequest)
	}
	return from, to, nil
}
