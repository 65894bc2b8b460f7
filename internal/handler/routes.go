package handler

import (
	"net/http"

	"osint-pivot/internal/metrics"
)

// CORS sets permissive CORS headers so extension pages can call the daemon
func CORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// NewRouter wires every endpoint onto a mux
func NewRouter(messages *MessageHandler, stream *StreamHandler, pages *PageHandler, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/message", CORS(messages.HandleMessage))
	mux.HandleFunc("/events", CORS(stream.Events))
	mux.HandleFunc("/otx/page", CORS(pages.ReportPage))
	mux.HandleFunc("/stats", CORS(pages.GetStats))
	mux.HandleFunc("/healthz", pages.Healthz)
	mux.Handle("/metrics", m.Handler())
	return mux
}
