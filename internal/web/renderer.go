// Package web holds the console's HTML views and the Echo renderer that
// executes them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer. Each view is the shared layout cloned
// and extended with the view's own "content" block.
type Renderer struct {
	views map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{views: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.views[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return r, nil
}

// MustRenderer panics when the embedded templates do not parse.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.views[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a view exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.views[name]
	return ok
}

var funcs = template.FuncMap{
	"date": func(t *domain.Timestamp) string { return t.Display() },
	"dateValue": func(t *domain.Timestamp) string {
		return t.DateValue()
	},
	"roleNames": func(roles []domain.Role) string {
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			if r.Name != "" {
				names = append(names, r.Name)
			} else {
				names = append(names, r.Code)
			}
		}
		if len(names) == 0 {
			return "No roles"
		}
		return strings.Join(names, ", ")
	},
	"label": func(s string) string {
		s = strings.ReplaceAll(s, "_", " ")
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"active": func(routePath, current string) bool {
		return routePath == current
	},
}
