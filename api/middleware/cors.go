package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/laundrypro-storefront/api/responses"
)

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, responses.HeaderLoginURL},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
