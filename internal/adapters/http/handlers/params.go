package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/notekeeper/internal/platform/logging"
)

// errInvalidNoteID is returned when the :id path segment is not a base-10
// integer.
var errInvalidNoteID = errors.New("note id must be an integer")

// parseNoteID reads the :id path parameter as a base-10 int64. Zero and
// negative values parse fine and simply match no note, so the store reports
// them as not found. Spaces, fractions, hex forms and out-of-range values are
// rejected. On success the request logger is tagged with the note id.
func parseNoteID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidNoteID
	}

	c.Request = c.Request.WithContext(logging.WithNoteID(c.Request.Context(), id))

	return id, nil
}
