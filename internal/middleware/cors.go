package middleware

import (
	"net/http"

	"shoutbox-backend/internal/config"

	"github.com/rs/cors"
)

// NewCORS builds the CORS wrapper. The shoutbox frontend is served
// from a different origin, and the custom headers carry the subnet
// hint and device tag.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Device-ID", "X-Local-Subnet"},
	})
	return c.Handler
}
