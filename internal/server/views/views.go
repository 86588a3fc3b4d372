// Package views renders the dashboard's server-side HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"

	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/internal/notify"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.
const (
	PageProcesses    = "processes"
	PageProcess      = "process"
	PageProducts     = "products"
	PageProduct      = "product"
	PageComponents   = "components"
	PageRoutings     = "routings"
	PageQualityHours = "quality_hours"
)

var pageNames = []string{
	PageProcesses, PageProcess, PageProducts, PageProduct,
	PageComponents, PageRoutings, PageQualityHours,
}

// Page is the data every template receives. Content holds the page-specific view model.
type Page struct {
	Title      string
	Subtitle   string
	User       *models.User
	Processes  []models.Process
	ActivePath string
	Notices    []notify.Notice
	Content    any
}

// Renderer is a gin HTML renderer with one template set per page, each
// sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		return render.String{Format: "unknown view %q", Data: []any{name}}
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}

var funcs = template.FuncMap{
	"hours": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%.2f%%", v)
	},
	"text": func(v *string) string {
		if v == nil || *v == "" {
			return "-"
		}
		return *v
	},
	"number": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *v)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"indent": func(depth int) string {
		return fmt.Sprintf("%.1f", float64(depth)*1.5)
	},
	"month":    monthLabel,
	"isActive": strings.HasPrefix,
}

// monthLabel turns "2024-03" into "Mar". Anything else is returned unchanged.
func monthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan")
}
