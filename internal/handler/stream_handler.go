package handler

import (
	"fmt"
	"net/http"
	"time"

	"osint-pivot/internal/events"
	"osint-pivot/internal/logger"
	"osint-pivot/internal/service"
)

// DefaultHeartbeatInterval is how often an idle stream gets a keep-alive comment
const DefaultHeartbeatInterval = 15 * time.Second

// StreamHandler pushes job and settings broadcasts over server-sent events
type StreamHandler struct {
	broker    *events.Broker
	jobs      *service.JobService
	settings  *service.SettingsService
	logger    logger.Logger
	heartbeat time.Duration
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(broker *events.Broker, jobs *service.JobService, settings *service.SettingsService, log logger.Logger) *StreamHandler {
	return &StreamHandler{
		broker:    broker,
		jobs:      jobs,
		settings:  settings,
		logger:    log,
		heartbeat: DefaultHeartbeatInterval,
	}
}

// Events handles GET /events
func (h *StreamHandler) Events(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()
	eventChan, cleanup := h.broker.Subscribe(ctx)
	defer cleanup()

	// new observers start from a full snapshot
	for _, ev := range []events.Event{
		events.NewJobsUpdate(h.jobs.List()),
		events.NewSettingsUpdate(h.settings.Get()),
	} {
		if err := events.Write(w, ev); err != nil {
			return
		}
	}
	flusher.Flush()

	h.logger.Debug("Event stream connected", logger.String("remote_addr", r.RemoteAddr))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				h.logger.Debug("Event stream closed by broker")
				return
			}
			if err := events.Write(w, ev); err != nil {
				h.logger.Debug("Event stream write failed", logger.Error(err))
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprintf(w, ": heartbeat %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
				return
			}
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}
