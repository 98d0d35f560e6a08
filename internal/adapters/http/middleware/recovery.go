package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/notekeeper/internal/adapters/http/dto"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/views"
	"github.com/jsamuelsen/notekeeper/internal/platform/logging"
)

// APIPrefix is the path prefix of the JSON API. Requests under it get JSON
// error bodies, everything else gets the HTML error page.
const APIPrefix = "/api"

// IsAPIRequest reports whether the request targets the JSON API.
func IsAPIRequest(c *gin.Context) bool {
	path := c.Request.URL.Path
	return path == APIPrefix || strings.HasPrefix(path, APIPrefix+"/")
}

// Recovery returns middleware that recovers from panics.
// The panic and stack are logged at ERROR level and the client gets a 500
// in the format matching the request (JSON envelope or HTML page), unless
// headers were already sent.
//
// This middleware should be applied first in the chain.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			traceID := dto.GetTraceID(c)

			logging.FromContext(c.Request.Context()).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			const msg = "an internal error occurred"

			if IsAPIRequest(c) {
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(dto.ErrorCodeInternal, msg).WithTraceID(traceID))
				return
			}

			c.HTML(http.StatusInternalServerError, views.PageError,
				views.NewErrorData(http.StatusInternalServerError, msg))
			c.Abort()
		}()

		c.Next()
	}
}
