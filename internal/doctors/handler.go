package doctors

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/wolfman30/doctor-finder/pkg/logging"
)

// Handler exposes read-only doctor listings over HTTP.
type Handler struct {
	searcher *Searcher
	logger   *logging.Logger
}

// NewHandler creates a doctors handler.
func NewHandler(searcher *Searcher, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{searcher: searcher, logger: logger}
}

// Search handles GET /doctors.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := SearchParams{
		Specialty: strings.TrimSpace(q.Get("specialty")),
		City:      strings.TrimSpace(q.Get("city")),
		Gender:    strings.TrimSpace(q.Get("gender")),
	}
	if raw := q.Get("max_fee"); raw != "" {
		fee, err := strconv.Atoi(raw)
		if err != nil || fee < 0 {
			http.Error(w, "max_fee must be a non-negative integer", http.StatusBadRequest)
			return
		}
		params.MaxFee = &fee
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}

	results, err := h.searcher.Search(r.Context(), params)
	if err != nil {
		h.logger.Error("doctor search failed", "error", err)
		http.Error(w, "Failed to search doctors", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []Doctor{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"doctors": results})
}

// Specialties handles GET /doctors/specialties.
func (h *Handler) Specialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.searcher.Store().Specialties(r.Context())
	if err != nil {
		h.logger.Error("failed to list specialties", "error", err)
		http.Error(w, "Failed to list specialties", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"specialties": specialties})
}

// Stats handles GET /doctors/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.searcher.Store().Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to load doctor stats", "error", err)
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	total := 0
	for _, st := range stats {
		total += st.Count
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total, "stats": stats})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
