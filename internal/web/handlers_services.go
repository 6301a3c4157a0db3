package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/la-rentals/fleet/internal/core"
	"github.com/la-rentals/fleet/internal/logging"
)

// serviceDateLayout is the wire format for manual service entry dates.
const serviceDateLayout = "2006-01-02"

func (s *Server) handleAddService(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ServiceDate    string `json:"service_date"`
		CurrentKm      int    `json:"current_km"`
		ServiceDetails string `json:"service_details"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	date, err := time.Parse(serviceDateLayout, in.ServiceDate)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", errBadRequest, in.ServiceDate))
		return
	}

	svc, err := s.service.AddService(r.Context(), chi.URLParam(r, "id"), core.AddServiceInput{
		ServiceDate:    date,
		CurrentKm:      in.CurrentKm,
		ServiceDetails: in.ServiceDetails,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, svc)
}

func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteService(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResendNotification(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ResendNotification(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// handleImport accepts an .xlsx upload (multipart field "file" or the raw
// body) and runs it through the import pipeline. Row rejections come back
// in the summary; only file-level failures produce an error status.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	scooterID := chi.URLParam(r, "id")

	data, err := s.readUpload(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.service.ImportHistory(r.Context(), scooterID, data)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("import processed",
		"scooter_id", scooterID,
		"total_rows", result.TotalRows,
		"accepted", result.Accepted,
		"rejected", result.Rejected,
		"inserted", result.Inserted,
	)
	respondJSON(w, http.StatusOK, result)
}

// readUpload extracts the spreadsheet bytes from a multipart form when one
// is present, or the raw request body otherwise, enforcing the configured
// size limit either way.
func (s *Server) readUpload(r *http.Request) ([]byte, error) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(nil, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: multipart form has no \"file\" field", errBadRequest)
		}
		defer file.Close()
		return readLimited(file, maxSize)
	}

	return readLimited(r.Body, maxSize)
}

func readLimited(rd io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(rd)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, fmt.Errorf("file too large: limit is %d bytes", maxSize)
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", errBadRequest)
	}
	return data, nil
}
