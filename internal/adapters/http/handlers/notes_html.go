package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/notekeeper/internal/adapters/http/dto"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/views"
	"github.com/jsamuelsen/notekeeper/internal/app"
)

// Messages are the banner texts shown on the home page after a successful
// mutation.
type Messages struct {
	Created string
	Updated string
	Deleted string
}

// NoteHTMLHandler serves the browser-facing pages. Mutations answer with
// 303 See Other so the browser follows up with a GET of the home page.
type NoteHTMLHandler struct {
	service  *app.NoteService
	messages Messages
}

// NewNoteHTMLHandler creates a new HTML note handler.
func NewNoteHTMLHandler(service *app.NoteService, messages Messages) *NoteHTMLHandler {
	return &NoteHTMLHandler{service: service, messages: messages}
}

// Home handles GET /. The optional message query parameter is shown as a banner.
func (h *NoteHTMLHandler) Home(c *gin.Context) {
	notes, err := h.service.ListNotes(c.Request.Context())
	if err != nil {
		renderErrorPage(c, err)
		return
	}

	c.HTML(http.StatusOK, views.PageHome, views.HomeData{
		Message: c.Query("message"),
		Notes:   notes,
	})
}

// Create handles POST /notes.
func (h *NoteHTMLHandler) Create(c *gin.Context) {
	var req dto.NoteRequest
	if err := dto.BindFormAndValidate(c, &req); err != nil {
		renderBindError(c, err)
		return
	}

	if _, err := h.service.CreateNote(c.Request.Context(), req.ToInput()); err != nil {
		renderErrorPage(c, err)
		return
	}

	redirectHome(c, h.messages.Created)
}

// EditForm handles GET /notes/:id/edit.
func (h *NoteHTMLHandler) EditForm(c *gin.Context) {
	id, err := parseNoteID(c)
	if err != nil {
		renderErrorMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.service.GetNote(c.Request.Context(), id)
	if err != nil {
		renderErrorPage(c, err)
		return
	}

	c.HTML(http.StatusOK, views.PageEdit, views.EditData{Note: note})
}

// Update handles POST /notes/:id/edit.
func (h *NoteHTMLHandler) Update(c *gin.Context) {
	id, err := parseNoteID(c)
	if err != nil {
		renderErrorMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.NoteRequest
	if err := dto.BindFormAndValidate(c, &req); err != nil {
		renderBindError(c, err)
		return
	}

	if _, err := h.service.UpdateNote(c.Request.Context(), id, req.ToInput()); err != nil {
		renderErrorPage(c, err)
		return
	}

	redirectHome(c, h.messages.Updated)
}

// Delete handles POST /notes/:id/delete.
func (h *NoteHTMLHandler) Delete(c *gin.Context) {
	id, err := parseNoteID(c)
	if err != nil {
		renderErrorMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.service.DeleteNote(c.Request.Context(), id); err != nil {
		renderErrorPage(c, err)
		return
	}

	redirectHome(c, h.messages.Deleted)
}

// RegisterRoutes registers the HTML routes on the engine root.
func (h *NoteHTMLHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Home)
	r.POST("/notes", h.Create)
	r.GET("/notes/:id/edit", h.EditForm)
	r.POST("/notes/:id/edit", h.Update)
	r.POST("/notes/:id/delete", h.Delete)
}

func redirectHome(c *gin.Context, message string) {
	target := "/"
	if message != "" {
		target += "?message=" + url.QueryEscape(message)
	}

	c.Redirect(http.StatusSeeOther, target)
}

// renderErrorPage renders the error page with the status a JSON client
// would get for the same error.
func renderErrorPage(c *gin.Context, err error) {
	status, resp := dto.MapError(err)
	dto.LogFailure(c, "page request failed", status, err)

	renderErrorMessage(c, status, resp.Error.Message)
}

func renderBindError(c *gin.Context, err error) {
	if !errors.Is(err, dto.ErrValidation) {
		renderErrorMessage(c, http.StatusBadRequest, "the form could not be read")
		return
	}

	fields := dto.ValidationErrors(err)
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+": "+msg)
	}
	slices.Sort(parts)

	renderErrorMessage(c, http.StatusBadRequest, strings.Join(parts, "; "))
}

func renderErrorMessage(c *gin.Context, status int, message string) {
	c.HTML(status, views.PageError, views.NewErrorData(status, message))
}

// RenderNotFoundPage is used for unknown routes outside the API.
func RenderNotFoundPage(c *gin.Context) {
	renderErrorMessage(c, http.StatusNotFound, "page not found")
}

// RenderMethodNotAllowedPage is used for known routes hit with the wrong method.
func RenderMethodNotAllowedPage(c *gin.Context) {
	renderErrorMessage(c, http.StatusMethodNotAllowed, "method not allowed")
}
