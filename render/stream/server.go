package stream

import (
	"encoding/json"
	"net/http"

	"github.com/lixenwraith/forcegraph/status"
)

// NewMux routes the websocket endpoint and a JSON metrics view
//
//	GET /ws       frame stream
//	GET /metrics  status registry snapshot
//	GET /healthz  liveness
func NewMux(hub *Hub, reg *status.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /ws", hub)
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reg.Snapshot()); err != nil {
			hub.logger.Warn("metrics encode failed", "error", err)
		}
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
