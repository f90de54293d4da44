package prescriptions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath-health/clinicstore/pkg/logging"
)

// Handler handles HTTP requests for prescriptions
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

// NewHandler creates a new prescriptions handler
func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /prescriptions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.LoadAll(r.Context())
	if err != nil {
		h.logger.Error("failed to load prescriptions", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(all)
}

// Create handles POST /prescriptions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var candidate Prescription
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
		h.logger.Error("failed to create prescription", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("prescription created", "prescription_id", id, "patient_id", candidate.PatientID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// Update handles PUT /prescriptions/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var candidate Prescription
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
		h.logger.Error("failed to update prescription", "error", err, "prescription_id", candidate.ID)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "prescription not found: "+candidate.ID, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Collect handles POST /prescriptions/{id}/collect
func (h *Handler) Collect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.repo.MarkCollected(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to mark prescription collected", "error", err, "prescription_id", id)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "prescription not found: "+id, http.StatusNotFound)
		return
	}

	h.logger.Info("prescription collected", "prescription_id", id)
	w.WriteHeader(http.StatusNoContent)
}
