package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/notekeeper/internal/adapters/http/dto"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/views"
	"github.com/jsamuelsen/notekeeper/internal/adapters/storage/memory"
	"github.com/jsamuelsen/notekeeper/internal/app"
	"github.com/jsamuelsen/notekeeper/internal/domain"
	"github.com/jsamuelsen/notekeeper/internal/mocks"
	"github.com/jsamuelsen/notekeeper/internal/ports"
)

var testMessages = Messages{
	Created: "Note added successfully!",
	Updated: "Note edited successfully!",
	Deleted: "Note deleted successfully!",
}

// setupNotesRouter wires both note handlers over store on a bare engine.
func setupNotesRouter(t *testing.T, store ports.NoteStore) *gin.Engine {
	t.Helper()

	renderer, err := views.New("notekeeper")
	require.NoError(t, err)

	service := app.NewNoteService(app.NoteServiceConfig{
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	engine := gin.New()
	engine.HTMLRender = renderer
	NewNoteHTMLHandler(service, testMessages).RegisterRoutes(engine)
	NewNoteAPIHandler(service).RegisterRoutes(engine.Group("/api"))

	return engine
}

func do(engine *gin.Engine, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func postForm(engine *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	return do(engine, http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func sendJSON(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	return do(engine, method, target, strings.NewReader(body), "application/json")
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestParseNoteID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "42", want: 42},
		{raw: "007", want: 7},
		{raw: "9223372036854775807", want: 9223372036854775807},
		{raw: "0", want: 0},
		{raw: "-1", want: -1},
		{raw: "+1", want: 1},
		{raw: "-9223372036854775808", want: -9223372036854775808},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "0x10", wantErr: true},
		{raw: " 1", wantErr: true},
		{raw: "1 ", wantErr: true},
		{raw: "--1", wantErr: true},
		{raw: "9223372036854775808", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			got, err := parseNoteID(c)

			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidNoteID)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTML_GroceriesScenario(t *testing.T) {
	engine := setupNotesRouter(t, memory.New())

	w := postForm(engine, "/notes", url.Values{"title": {"Groceries"}, "content": {"Milk, eggs"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?message="+url.QueryEscape(testMessages.Created), w.Header().Get("Location"))

	w = do(engine, http.MethodGet, "/?message="+url.QueryEscape(testMessages.Created), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testMessages.Created)
	assert.Contains(t, w.Body.String(), "Groceries")
	assert.Contains(t, w.Body.String(), `href="/notes/1/edit"`)

	w = do(engine, http.MethodGet, "/notes/1/edit", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Groceries"`)
	assert.Contains(t, w.Body.String(), "Milk, eggs</textarea>")

	w = postForm(engine, "/notes/1/edit", url.Values{"title": {"Groceries"}, "content": {"Milk, eggs, bread"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?message="+url.QueryEscape(testMessages.Updated), w.Header().Get("Location"))

	w = do(engine, http.MethodGet, "/api/notes/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Groceries","content":"Milk, eggs, bread"}`, w.Body.String())

	w = postForm(engine, "/notes/1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?message="+url.QueryEscape(testMessages.Deleted), w.Header().Get("Location"))

	w = do(engine, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No notes yet.")

	w = postForm(engine, "/notes/1/delete", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTML_CreateRejectsMissingField(t *testing.T) {
	store := mocks.NewMockNoteStore(t)
	engine := setupNotesRouter(t, store)

	w := postForm(engine, "/notes", url.Values{"title": {"Groceries"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "content: this field is required")
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHTML_CreateAcceptsEmptyFields(t *testing.T) {
	store := memory.New()
	engine := setupNotesRouter(t, store)

	w := postForm(engine, "/notes", url.Values{"title": {""}, "content": {""}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	notes, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []domain.Note{{ID: 1}}, notes)
}

func TestHTML_CreateRejectsInvalidUTF8(t *testing.T) {
	store := memory.New()
	engine := setupNotesRouter(t, store)

	w := postForm(engine, "/notes", url.Values{"title": {"\xff"}, "content": {"x"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be valid UTF-8 text")

	notes, err := store.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestHTML_EmptyMessageRedirectsToBareRoot(t *testing.T) {
	renderer, err := views.New("notekeeper")
	require.NoError(t, err)

	service := app.NewNoteService(app.NoteServiceConfig{Store: memory.New(), Logger: slog.New(slog.DiscardHandler)})
	engine := gin.New()
	engine.HTMLRender = renderer
	NewNoteHTMLHandler(service, Messages{}).RegisterRoutes(engine)

	w := postForm(engine, "/notes", url.Values{"title": {"a"}, "content": {"b"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestHTML_IDErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		form       url.Values
		wantStatus int
	}{
		{"edit form non-integer", http.MethodGet, "/notes/abc/edit", nil, http.StatusBadRequest},
		{"edit form unknown", http.MethodGet, "/notes/99/edit", nil, http.StatusNotFound},
		{"edit form zero", http.MethodGet, "/notes/0/edit", nil, http.StatusNotFound},
		{"edit form negative", http.MethodGet, "/notes/-1/edit", nil, http.StatusNotFound},
		{"apply edit non-integer", http.MethodPost, "/notes/abc/edit", url.Values{"title": {"x"}, "content": {"y"}}, http.StatusBadRequest},
		{"apply edit unknown", http.MethodPost, "/notes/99/edit", url.Values{"title": {"x"}, "content": {"y"}}, http.StatusNotFound},
		{"delete non-integer", http.MethodPost, "/notes/1x/delete", nil, http.StatusBadRequest},
		{"delete unknown", http.MethodPost, "/notes/99/delete", nil, http.StatusNotFound},
		{"delete negative", http.MethodPost, "/notes/-7/delete", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			engine := setupNotesRouter(t, store)

			var w *httptest.ResponseRecorder
			if tt.method == http.MethodPost {
				w = postForm(engine, tt.target, tt.form)
			} else {
				w = do(engine, tt.method, tt.target, nil, "")
			}

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

			notes, err := store.List(t.Context())
			require.NoError(t, err)
			assert.Empty(t, notes, "failed requests must not create notes")
		})
	}
}

func TestHTML_UpdateMissingFieldLeavesNoteUnchanged(t *testing.T) {
	store := memory.New()
	_, err := store.Create(t.Context(), domain.NoteInput{Title: "A", Content: "B"})
	require.NoError(t, err)

	engine := setupNotesRouter(t, store)

	w := postForm(engine, "/notes/1/edit", url.Values{"title": {"changed"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got, err := store.Get(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestHTML_HomeStoreFailure(t *testing.T) {
	store := mocks.NewMockNoteStore(t)
	store.EXPECT().List(mock.Anything).Return(nil, domain.NewUnavailableError("note-store", "listing notes", errors.New("disk")))

	engine := setupNotesRouter(t, store)

	w := do(engine, http.MethodGet, "/", nil, "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "temporarily unavailable")
}

func TestAPI_CRUD(t *testing.T) {
	engine := setupNotesRouter(t, memory.New())

	w := do(engine, http.MethodGet, "/api/notes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = sendJSON(engine, http.MethodPost, "/api/notes", `{"title":"Groceries","content":"Milk, eggs"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/notes/1", w.Header().Get("Location"))
	assert.JSONEq(t, `{"id":1,"title":"Groceries","content":"Milk, eggs"}`, w.Body.String())

	w = sendJSON(engine, http.MethodPut, "/api/notes/1", `{"title":"Groceries","content":"Milk, eggs, bread"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Groceries","content":"Milk, eggs, bread"}`, w.Body.String())

	w = do(engine, http.MethodGet, "/api/notes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"title":"Groceries","content":"Milk, eggs, bread"}]`, w.Body.String())

	w = do(engine, http.MethodDelete, "/api/notes/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Groceries","content":"Milk, eggs, bread"}`, w.Body.String())

	w = do(engine, http.MethodDelete, "/api/notes/1", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNotFound, decodeError(t, w).Error.Code)

	w = sendJSON(engine, http.MethodPost, "/api/notes", `{"title":"next","content":""}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/notes/2", w.Header().Get("Location"), "ids are not reused")
}

func TestAPI_Errors(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		wantStatus  int
		wantCode    string
		wantDetails []string
	}{
		{"get non-integer id", http.MethodGet, "/api/notes/abc", "", http.StatusBadRequest, dto.ErrorCodeBadRequest, nil},
		{"get zero id", http.MethodGet, "/api/notes/0", "", http.StatusNotFound, dto.ErrorCodeNotFound, nil},
		{"get fractional id", http.MethodGet, "/api/notes/1.5", "", http.StatusBadRequest, dto.ErrorCodeBadRequest, nil},
		{"get unknown", http.MethodGet, "/api/notes/99", "", http.StatusNotFound, dto.ErrorCodeNotFound, nil},
		{"create missing title", http.MethodPost, "/api/notes", `{"content":"x"}`, http.StatusBadRequest, dto.ErrorCodeValidation, []string{"title"}},
		{"create missing both", http.MethodPost, "/api/notes", `{}`, http.StatusBadRequest, dto.ErrorCodeValidation, []string{"title", "content"}},
		{"create malformed body", http.MethodPost, "/api/notes", `{"title":`, http.StatusBadRequest, dto.ErrorCodeBadRequest, nil},
		{"update non-integer id", http.MethodPut, "/api/notes/x", `{"title":"a","content":"b"}`, http.StatusBadRequest, dto.ErrorCodeBadRequest, nil},
		{"update unknown", http.MethodPut, "/api/notes/5", `{"title":"a","content":"b"}`, http.StatusNotFound, dto.ErrorCodeNotFound, nil},
		{"update missing content", http.MethodPut, "/api/notes/5", `{"title":"a"}`, http.StatusBadRequest, dto.ErrorCodeValidation, []string{"content"}},
		{"delete negative id", http.MethodDelete, "/api/notes/-3", "", http.StatusNotFound, dto.ErrorCodeNotFound, nil},
		{"delete non-integer id", http.MethodDelete, "/api/notes/0x3", "", http.StatusBadRequest, dto.ErrorCodeBadRequest, nil},
		{"delete unknown", http.MethodDelete, "/api/notes/5", "", http.StatusNotFound, dto.ErrorCodeNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := setupNotesRouter(t, memory.New())

			w := sendJSON(engine, tt.method, tt.target, tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			for _, field := range tt.wantDetails {
				assert.Contains(t, resp.Error.Details, field)
			}
		})
	}
}

func TestAPI_StoreUnavailable(t *testing.T) {
	store := mocks.NewMockNoteStore(t)
	store.EXPECT().Create(mock.Anything, domain.NoteInput{Title: "a", Content: "b"}).
		Return(domain.Note{}, domain.NewUnavailableError("note-store", "inserting note", errors.New("database is locked")))

	engine := setupNotesRouter(t, store)

	w := sendJSON(engine, http.MethodPost, "/api/notes", `{"title":"a","content":"b"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeUnavailable, resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "database is locked")
}

func TestAPI_StoreContextErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "deadline exceeded",
			err:        fmt.Errorf("reading note: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrorCodeTimeout,
		},
		{
			name:       "deadline inside unavailable error",
			err:        domain.NewUnavailableError("note-store", "reading note", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrorCodeTimeout,
		},
		{
			name:       "client went away",
			err:        fmt.Errorf("reading note: %w", context.Canceled),
			wantStatus: dto.StatusClientClosedRequest,
			wantCode:   dto.ErrorCodeCanceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockNoteStore(t)
			store.EXPECT().Get(mock.Anything, int64(1)).Return(domain.Note{}, tt.err)

			engine := setupNotesRouter(t, store)

			w := do(engine, http.MethodGet, "/api/notes/1", nil, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Error.Code)
		})
	}
}

func TestAPI_UnexpectedError(t *testing.T) {
	store := mocks.NewMockNoteStore(t)
	store.EXPECT().Get(mock.Anything, int64(1)).Return(domain.Note{}, errors.New("boom"))

	engine := setupNotesRouter(t, store)

	w := do(engine, http.MethodGet, "/api/notes/1", nil, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternal, decodeError(t, w).Error.Code)
}

func TestNoteHandlers_RegisterRoutes(t *testing.T) {
	engine := setupNotesRouter(t, mocks.NewMockNoteStore(t))

	routeMap := make(map[string]bool)
	for _, r := range engine.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"GET /",
		"POST /notes",
		"GET /notes/:id/edit",
		"POST /notes/:id/edit",
		"POST /notes/:id/delete",
		"GET /api/notes",
		"POST /api/notes",
		"GET /api/notes/:id",
		"PUT /api/notes/:id",
		"DELETE /api/notes/:id",
	}

	for _, route := range expected {
		assert.True(t, routeMap[route], "missing route: %s", route)
	}
	assert.Len(t, routeMap, len(expected))
}
