// Package views renders the server-side HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin/render"

	"github.com/jsamuelsen/notekeeper/internal/domain"
)

// Page names accepted by Renderer.
const (
	PageHome  = "home"
	PageEdit  = "edit"
	PageError = "error"
)

const layoutName = "layout"

//go:embed templates/*.html
var templateFS embed.FS

// HomeData is the model for the home page.
type HomeData struct {
	Message string
	Notes   []domain.Note
}

// EditData is the model for the edit page.
type EditData struct {
	Note domain.Note
}

// ErrorData is the model for the error page.
type ErrorData struct {
	Status     int
	StatusText string
	Message    string
}

// NewErrorData fills StatusText from the status code.
func NewErrorData(status int, message string) ErrorData {
	return ErrorData{Status: status, StatusText: http.StatusText(status), Message: message}
}

// Renderer holds one parsed template set per page, each combined with the
// shared layout. It implements gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New parses the embedded templates. appName is shown in the page header
// and title.
func New(appName string) (*Renderer, error) {
	funcs := template.FuncMap{
		"appName": func() string { return appName },
	}

	pages := make(map[string]*template.Template)
	for _, page := range []string{PageHome, PageEdit, PageError} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", page, err)
		}

		pages[page] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		return unknownPage(name)
	}

	return render.HTML{Template: tmpl, Name: layoutName, Data: data}
}

// Render writes the named page to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	return tmpl.ExecuteTemplate(w, layoutName, data)
}

type unknownPage string

func (p unknownPage) Render(w http.ResponseWriter) error {
	p.WriteContentType(w)
	return fmt.Errorf("unknown page %q", string(p))
}

func (unknownPage) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{"text/html; charset=utf-8"}
	}
}
