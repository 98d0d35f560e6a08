package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/notekeeper/internal/adapters/http/dto"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/handlers"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/middleware"
)

// notFound answers unmatched routes in the format of the surface they hit.
func notFound(c *gin.Context) {
	if middleware.IsAPIRequest(c) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")
		return
	}

	handlers.RenderNotFoundPage(c)
}

// methodNotAllowed answers known paths hit with an unregistered method.
func methodNotAllowed(c *gin.Context) {
	if middleware.IsAPIRequest(c) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeMethodNotAllowed, "method not allowed")
		return
	}

	handlers.RenderMethodNotAllowedPage(c)
}
