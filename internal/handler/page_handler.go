package handler

import (
	"errors"
	"io"
	"net/http"

	"osint-pivot/internal/logger"
	"osint-pivot/internal/metrics"
	"osint-pivot/internal/models"
	"osint-pivot/internal/service"
)

const maxPageBytes = 4 << 20

// PageHandler accepts rendered OTX pages and exposes operational endpoints
type PageHandler struct {
	worker  *service.WorkerService
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(worker *service.WorkerService, metrics *metrics.Metrics, log logger.Logger) *PageHandler {
	return &PageHandler{
		worker:  worker,
		metrics: metrics,
		logger:  log,
	}
}

// ReportPage handles POST /otx/page?url=
func (h *PageHandler) ReportPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeJSON(w, http.StatusBadRequest, failure("url query parameter is required"), h.logger)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPageBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"), h.logger)
		return
	}

	err = h.worker.Submit(service.PageReport{URL: pageURL, Body: string(body)})
	switch {
	case errors.Is(err, service.ErrNotOTXPage):
		writeJSON(w, http.StatusBadRequest, failure("not an OTX url_list page"), h.logger)
	case errors.Is(err, service.ErrQueueFull):
		h.logger.Warn("Page queue full, dropping report", logger.String("url", pageURL))
		writeJSON(w, http.StatusServiceUnavailable, failure("page queue full"), h.logger)
	case err != nil:
		writeJSON(w, http.StatusBadRequest, failure(err.Error()), h.logger)
	default:
		writeJSON(w, http.StatusAccepted, models.Response{OK: true}, h.logger)
	}
}

// GetStats handles GET /stats
func (h *PageHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.metrics.GetSnapshot(), h.logger)
}

// Healthz handles GET /healthz
func (h *PageHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}
