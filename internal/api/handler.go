package api

import (
	"encoding/json"
	"net/http"

	"github.com/Gustitos/gustitosgo-backend/internal/logging"
	"github.com/Gustitos/gustitosgo-backend/internal/models"
	"github.com/Gustitos/gustitosgo-backend/internal/service"
)

// Handler holds dependencies for the API handlers.
type Handler struct {
	svc    *service.Service
	logger logging.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc *service.Service, logger logging.Logger) *Handler {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// CreateReport handles POST /create-report requests. The response mirrors
// the pipeline result: either a report reference with metrics or an error
// description, always with HTTP 200 for handled pipeline errors and 400 for
// malformed request bodies.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	req := models.DefaultReportRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ReportResult{
			Success: false,
			Error:   "invalid JSON request body",
		})
		return
	}

	result := h.svc.GenerateReport(r.Context(), req)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

// Root handles GET / liveness requests.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "GustitosGo backend is running.",
	})
}

// Health handles GET /health requests and reports whether the service is
// running on real or fallback reference data.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dir := h.svc.Directory()
	payload := map[string]interface{}{
		"status":             "ok",
		"directory_entries":  dir.Directory.Len(),
		"directory_fallback": dir.Fallback,
	}
	if dir.Fallback {
		payload["directory_fallback_reason"] = dir.Reason
	}
	writeJSON(w, http.StatusOK, payload)
}

// ReloadData handles POST /reload-data requests, atomically refreshing the
// directory and transaction snapshots.
func (h *Handler) ReloadData(w http.ResponseWriter, r *http.Request) {
	h.svc.Reload()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
