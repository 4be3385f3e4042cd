package ingest

import (
	"encoding/json"
	"net/http"

	"github.com/wolfman30/doctor-finder/pkg/logging"
)

// Handler triggers ingestion over HTTP.
type Handler struct {
	importer *Importer
	source   Source
	logger   *logging.Logger
}

// NewHandler creates an import handler. source may be nil when no listings
// are configured.
func NewHandler(importer *Importer, source Source, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{importer: importer, source: source, logger: logger}
}

// Import handles POST /admin/import.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		http.Error(w, "No doctor data source configured", http.StatusServiceUnavailable)
		return
	}
	report, err := h.importer.Import(r.Context(), h.source)
	if err != nil {
		h.logger.Error("import failed", "error", err)
		http.Error(w, "Failed to import doctors", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(report)
}
