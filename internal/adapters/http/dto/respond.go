package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/notekeeper/internal/domain"
	"github.com/jsamuelsen/notekeeper/internal/platform/logging"
)

const (
	// ContextKeyTraceID is the gin.Context key checked first by GetTraceID.
	ContextKeyTraceID = "trace_id"

	// ContextKeyRequestID is the gin.Context key holding the request id
	// accepted or generated by the request id middleware.
	ContextKeyRequestID = "request_id"

	msgUnavailable = "the note store is temporarily unavailable"
	msgTimeout     = "request timeout exceeded"
	msgCanceled    = "request canceled"
	msgInternal    = "an internal error occurred"
)

// GetTraceID returns the id used to correlate an error response with logs.
// It prefers an explicit trace_id in the gin context, then the active
// OpenTelemetry span, then the request id stored by the middleware.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyTraceID); ok {
		if id, ok := v.(string); ok {
			return id
		}

		return ""
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.GetString(ContextKeyRequestID)
}

// MapError maps a domain error to an HTTP status and error envelope.
// Unknown errors map to 500 with a generic message so internals never leak.
func MapError(err error) (int, *ErrorResponse) {
	switch {
	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, msgTimeout)

	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, NewErrorResponse(ErrorCodeCanceled, msgCanceled)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, msgUnavailable)

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, msgInternal)
	}
}

// HandleError writes the JSON error envelope for err. Server-side failures
// are logged with the full error chain.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err)
	resp.WithTraceID(GetTraceID(c))

	LogFailure(c, "request failed", status, err, slog.String("trace_id", resp.TraceID))

	c.JSON(status, resp)
}

// LogFailure logs err at a level matching status. Expired or canceled
// requests are warnings, other server-side failures are errors, and client
// errors are not logged.
func LogFailure(c *gin.Context, msg string, status int, err error, attrs ...slog.Attr) {
	var level slog.Level

	switch {
	case domain.IsCanceled(err):
		level = slog.LevelWarn
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	default:
		return
	}

	ctx := c.Request.Context()
	attrs = append([]slog.Attr{slog.Int("status", status), slog.Any("error", err)}, attrs...)
	logging.FromContext(ctx).LogAttrs(ctx, level, msg, attrs...)
}

// RespondWithErrorCode writes an error envelope for adapter-level failures
// that have no domain error behind them.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// AbortWithErrorCode aborts the handler chain with an error envelope.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// RespondWithValidationErrors writes a 400 response with field-level details.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", fieldErrors)
	c.JSON(http.StatusBadRequest, resp.WithTraceID(GetTraceID(c)))
}
