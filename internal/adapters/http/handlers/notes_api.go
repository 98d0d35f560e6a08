package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/notekeeper/internal/adapters/http/dto"
	"github.com/jsamuelsen/notekeeper/internal/app"
)

// NoteAPIHandler serves the JSON API under /api/notes.
type NoteAPIHandler struct {
	service *app.NoteService
}

// NewNoteAPIHandler creates a new API note handler.
func NewNoteAPIHandler(service *app.NoteService) *NoteAPIHandler {
	return &NoteAPIHandler{service: service}
}

// List handles GET /api/notes.
//
// @Summary List notes
// @Tags notes
// @Produce json
// @Success 200 {array} dto.NoteResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/notes [get]
func (h *NoteAPIHandler) List(c *gin.Context) {
	notes, err := h.service.ListNotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNoteListResponse(notes))
}

// Get handles GET /api/notes/:id.
//
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.NoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/{id} [get]
func (h *NoteAPIHandler) Get(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		return
	}

	note, err := h.service.GetNote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNoteResponse(note))
}

// Create handles POST /api/notes.
//
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param note body dto.NoteRequest true "Note"
// @Success 201 {object} dto.NoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/notes [post]
func (h *NoteAPIHandler) Create(c *gin.Context) {
	var req dto.NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.service.CreateNote(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/notes/"+strconv.FormatInt(note.ID, 10))
	c.JSON(http.StatusCreated, dto.NewNoteResponse(note))
}

// Update handles PUT /api/notes/:id.
//
// @Summary Replace a note's title and content
// @Tags notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param note body dto.NoteRequest true "Note"
// @Success 200 {object} dto.NoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/{id} [put]
func (h *NoteAPIHandler) Update(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.service.UpdateNote(c.Request.Context(), id, req.ToInput())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNoteResponse(note))
}

// Delete handles DELETE /api/notes/:id and returns the removed note.
//
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.NoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notes/{id} [delete]
func (h *NoteAPIHandler) Delete(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		return
	}

	note, err := h.service.DeleteNote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNoteResponse(note))
}

// RegisterRoutes registers the API routes on rg, which is expected to be
// mounted at /api.
func (h *NoteAPIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	notes.GET("", h.List)
	notes.POST("", h.Create)
	notes.GET("/:id", h.Get)
	notes.PUT("/:id", h.Update)
	notes.DELETE("/:id", h.Delete)
}

func (h *NoteAPIHandler) noteID(c *gin.Context) (int64, bool) {
	id, err := parseNoteID(c)
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, err.Error())
		return 0, false
	}

	return id, true
}

func bindJSON(c *gin.Context, req *dto.NoteRequest) bool {
	err := dto.BindAndValidate(c, req)
	if err == nil {
		return true
	}

	if errors.Is(err, dto.ErrValidation) {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return false
	}

	dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON object with title and content strings")

	return false
}
