package referrals

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath-health/clinicstore/pkg/logging"
)

// Handler handles HTTP requests for referrals. Creation and queue
// operations go through the coordinator; reads and plain updates go
// straight to the repository.
type Handler struct {
	repo        *Repository
	coordinator *Coordinator
	logger      *logging.Logger
}

// NewHandler creates a new referrals handler
func NewHandler(repo *Repository, coordinator *Coordinator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, coordinator: coordinator, logger: logger}
}

// List handles GET /referrals
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.LoadAll(r.Context())
	if err != nil {
		h.logger.Error("failed to load referrals", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(all)
}

// Create handles POST /referrals: persist, queue and notify as one step.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var candidate Referral
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := candidate.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id, err := h.coordinator.CreateAndQueue(r.Context(), candidate)
	if errors.Is(err, ErrQueueFull) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		h.logger.Error("failed to create referral", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// Update handles PUT /referrals/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var candidate Referral
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	candidate.ID = chi.URLParam(r, "id")

	if err := candidate.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	found, err := h.coordinator.Update(r.Context(), candidate)
	if err != nil {
		h.logger.Error("failed to update referral", "error", err, "referral_id", candidate.ID)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "referral not found: "+candidate.ID, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProcessNext handles POST /referrals/queue/next. Responds 204 when the
// queue is empty.
func (h *Handler) ProcessNext(w http.ResponseWriter, r *http.Request) {
	processed, err := h.coordinator.ProcessNext(r.Context())
	if err != nil {
		h.logger.Error("failed to process referral", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if processed == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(processed)
}

// QueueSize handles GET /referrals/queue
func (h *Handler) QueueSize(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"size": h.coordinator.QueueSize()})
}
