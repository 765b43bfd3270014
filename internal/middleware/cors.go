package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/mvaldes-dev/portfolio-gallery/internal/config"
)

// NewCORSHandler answers preflight requests and stamps CORS headers on every
// response, including error envelopes and relayed upstream bodies.
func NewCORSHandler(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
