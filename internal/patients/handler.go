package patients

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath-health/clinicstore/pkg/logging"
)

// Handler handles HTTP requests for patients
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

// NewHandler creates a new patients handler
func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /patients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.LoadAll(r.Context())
	if err != nil {
		h.logger.Error("failed to load patients", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(all)
}

// Create handles POST /patients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var candidate Patient
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := candidate.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id, err := h.repo.Create(r.Context(), candidate)
	if err != nil {
		h.logger.Error("failed to create patient", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("patient created", "patient_id", id)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// Update handles PUT /patients/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var candidate Patient
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	candidate.ID = chi.URLParam(r, "id")

	if err := candidate.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	found, err := h.repo.Update(r.Context(), candidate)
	if err != nil {
		h.logger.Error("failed to update patient", "error", err, "patient_id", candidate.ID)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "patient not found: "+candidate.ID, http.StatusNotFound)
		return
	}

	h.logger.Info("patient updated", "patient_id", candidate.ID)
	w.WriteHeader(http.StatusNoContent)
}
