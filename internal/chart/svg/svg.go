// Package svg renders chart layouts as SVG documents.
package svg

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/rcreports/uptimechart/internal/chart/bullet"
	"github.com/rcreports/uptimechart/internal/chart/history"
)

var (
	//go:embed templates/*.svg.tmpl
	templatesFS embed.FS

	funcs = template.FuncMap{
		"num":   num,
		"add":   func(a, b float64) float64 { return a + b },
		"empty": func(s string) bool { return s == "" },
	}
)

const (
	tplBullet  = "bullet"
	tplHistory = "history"
)

// Renderer renders chart layouts into SVG.
type Renderer struct {
	tpls *template.Template
}

// NewRenderer returns a new SVG renderer.
func NewRenderer() (*Renderer, error) {
	tpls, err := template.New("svg").Funcs(funcs).ParseFS(templatesFS, "templates/*.svg.tmpl")
	if err != nil {
		return nil, fmt.Errorf("could not parse SVG templates: %w", err)
	}

	return &Renderer{tpls: tpls}, nil
}

// Bullet renders a bullet chart layout.
func (r *Renderer) Bullet(w io.Writer, l bullet.Layout) error {
	err := r.tpls.ExecuteTemplate(w, tplBullet, l)
	if err != nil {
		return fmt.Errorf("could not render bullet chart: %w", err)
	}
	return nil
}

// History renders a history chart layout.
func (r *Renderer) History(w io.Writer, l history.Layout) error {
	err := r.tpls.ExecuteTemplate(w, tplHistory, l)
	if err != nil {
		return fmt.Errorf("could not render history chart: %w", err)
	}
	return nil
}

// num formats a coordinate with the minimum digits, NaN and infinites are
// kept so malformed data is visible on the output.
func num(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
