package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleReportDamage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Note string `json:"note"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	if strings.TrimSpace(in.Note) == "" {
		s.respondError(w, r, fmt.Errorf("%w: damage note is required", errBadRequest))
		return
	}

	d, err := s.service.ReportDamage(r.Context(), chi.URLParam(r, "id"), in.Note)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

func (s *Server) handleResolveDamage(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ResolveDamage(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

func (s *Server) handleDeleteDamage(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteDamage(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
