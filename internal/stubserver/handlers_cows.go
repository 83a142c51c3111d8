package stubserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

func (s *Server) handleListCows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := models.CowQuery{
		Name:    q.Get("name"),
		Sick:    q.Get("sick") == "true",
		Aged:    q.Get("old") == "true",
		Adopted: q.Get("adopted") == "true",
		Sort:    q.Get("sort"),
	}
	writeData(w, http.StatusOK, s.store.listCows(query), "")
}

func (s *Server) handleGetCow(w http.ResponseWriter, r *http.Request) {
	cow, ok := s.store.getCow(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Cow not found")
		return
	}
	writeData(w, http.StatusOK, cow, "")
}

func (s *Server) handleCreateCow(w http.ResponseWriter, r *http.Request) {
	var in models.CowInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	writeData(w, http.StatusCreated, s.store.createCow(in), "Cow created successfully")
}

func (s *Server) handleUpdateCow(w http.ResponseWriter, r *http.Request) {
	var in models.CowInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cow, ok := s.store.updateCow(chi.URLParam(r, "id"), in)
	if !ok {
		writeError(w, http.StatusNotFound, "Cow not found")
		return
	}
	writeData(w, http.StatusOK, cow, "Cow updated successfully")
}

func (s *Server) handleDeleteCow(w http.ResponseWriter, r *http.Request) {
	if !s.store.deleteCow(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Cow not found")
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"success": true}, "Cow deleted successfully")
}
