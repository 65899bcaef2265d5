package http

import (
	"net/http"

	"shoutbox-backend/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the shoutbox routes. Route paths mirror the original
// service's public API so existing clients keep working.
func NewRouter(mh *handlers.MessageHandler, hh *handlers.HealthHandler, sh *handlers.SystemStatusHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/send", mh.Send).Methods(http.MethodPost)
	r.HandleFunc("/get", mh.Get).Methods(http.MethodGet)
	r.HandleFunc("/delete", mh.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/delete-image", mh.DeleteImage).Methods(http.MethodDelete)

	r.HandleFunc("/health", hh.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/system/status", sh.GetStatus).Methods(http.MethodGet)

	return r
}
