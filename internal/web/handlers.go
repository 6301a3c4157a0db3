package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/la-rentals/fleet/internal/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.ListCategories(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		s.respondError(w, r, fmt.Errorf("%w: category name is required", errBadRequest))
		return
	}

	cat, err := s.service.CreateCategory(r.Context(), in.Name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListScooters(w http.ResponseWriter, r *http.Request) {
	scooters, err := s.service.ListScooters(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, scooters)
}

func (s *Server) handleCreateScooter(w http.ResponseWriter, r *http.Request) {
	var in core.CreateScooterInput
	if err := decodeBody(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	if strings.TrimSpace(in.ID) == "" || strings.TrimSpace(in.CategoryID) == "" {
		s.respondError(w, r, fmt.Errorf("%w: scooter id and category_id are required", errBadRequest))
		return
	}

	sc, err := s.service.CreateScooter(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sc)
}

func (s *Server) handleGetScooter(w http.ResponseWriter, r *http.Request) {
	detail, err := s.service.GetScooter(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleToggleScooterStatus(w http.ResponseWriter, r *http.Request) {
	sc, err := s.service.ToggleScooterStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScooter(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteScooter(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody parses a JSON request body, tagging malformed input as a
// client error.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}
