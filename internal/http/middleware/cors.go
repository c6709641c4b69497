package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS настраивает доступ к API с разрешённых origins.
// Cookie сессии передаются, поэтому origins задаются явным списком.
func CORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept", "X-Requested-With", "DNT"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
