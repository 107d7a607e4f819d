package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/societyhub-backend/pkg/config"
)

var localOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORS applies the admin console origin policy. Local dev origins are only
// allowed outside production.
func CORS(app config.AppConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(app),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}

func allowedOrigins(app config.AppConfig) []string {
	var origins []string
	if !app.IsProd() {
		origins = append(origins, localOrigins...)
	}
	for _, o := range app.CORSOrigins {
		if o != "" && !slices.Contains(origins, o) {
			origins = append(origins, o)
		}
	}
	return origins
}
