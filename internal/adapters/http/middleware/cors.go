package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORSConfig configures cross-origin access for a path prefix.
type CORSConfig struct {
	// PathPrefix limits CORS handling to matching paths, e.g. "/api".
	PathPrefix string

	AllowedOrigins []string

	// MaxAge is how long, in seconds, browsers may cache a preflight answer.
	MaxAge int
}

// CORS applies rs/cors to requests under cfg.PathPrefix and answers
// preflight requests with 204.
//
// It must be installed on the engine rather than on a route group: a
// preflight OPTIONS request matches no route, so group middleware would
// never see it.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{
			"Content-Type",
			HeaderRequestID,
			HeaderCorrelationID,
		},
		ExposedHeaders: []string{
			"Location",
			"Retry-After",
			HeaderRequestID,
			HeaderCorrelationID,
		},
		MaxAge: cfg.MaxAge,
	})

	return func(ctx *gin.Context) {
		if !strings.HasPrefix(ctx.Request.URL.Path, cfg.PathPrefix) {
			ctx.Next()
			return
		}

		c.HandlerFunc(ctx.Writer, ctx.Request)

		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
