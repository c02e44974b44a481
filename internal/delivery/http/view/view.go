// Package view renders the server-side HTML pages. Templating is deliberately
// thin; all decisions happen in the handlers and usecases.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer on top of html/template.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"fmtDate": func(t interface{ Format(string) string }) string {
			return t.Format("Mon, 02 Jan 2006")
		},
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}

	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer. The template name is the file name.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return errors.Wrapf(r.templates.ExecuteTemplate(w, name, data), "failed to render %s", name)
}
