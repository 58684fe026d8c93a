package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/rcreports/uptimechart/internal/log"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
)

var (
	//go:embed all:static
	staticFS embed.FS
	//go:embed all:templates
	templatesFS embed.FS
)

// tplRenderer is a util that will make rendering templates easier and standardize inside the server.
type tplRenderer struct {
	logger log.Logger
	tpls   *template.Template

	// Extra data.
	// This data will be available on all templates as `Common.{KEY}`.
	CommonData map[string]any
}

var allowedTemplateExtensions = map[string]struct{}{
	".html": {},
	".tpl":  {},
	".tmpl": {},
}

func newTplRenderer(logger log.Logger) (*tplRenderer, error) {
	// Discover all template directories to parse.
	templatePaths := []string{}
	err := fs.WalkDir(templatesFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Only add files with allowed extensions.
		extension := strings.ToLower(filepath.Ext(path))
		if _, ok := allowedTemplateExtensions[extension]; ok {
			templatePaths = append(templatePaths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not discover template paths: %w", err)
	}

	// Parse all templates.
	templates, err := template.New("base").Funcs(template.FuncMap{
		"prettyPercent":        prettyPercent,
		"prettyHours":          prettyHours,
		"dateRangeLabel":       dateRangeLabel,
		"percentColorCSSClass": percentColorCSSClass,
	}).ParseFS(templatesFS, templatePaths...)
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}

	return &tplRenderer{
		logger: logger,
		tpls:   templates,
		CommonData: map[string]any{
			"CSSPath":    urls.NonAppURL(staticPrefix + "/css"),
			"JSPath":     urls.NonAppURL(staticPrefix + "/js"),
			"HomeURL":    urls.NonAppURL("/"),
			"UptimeURL":  urls.AppURL("/uptime"),
			"HistoryURL": urls.AppURL("/history"),
			"DateRanges": conventions.DateRanges,
		},
	}, nil
}

func (t *tplRenderer) withCtxData(ctx context.Context) *tplRenderer {
	c := maps.Clone(t.CommonData)

	return &tplRenderer{
		logger:     t.logger,
		tpls:       t.tpls,
		CommonData: c,
	}
}

func (t *tplRenderer) WithRequestData(r *http.Request) *tplRenderer {
	c := maps.Clone(t.CommonData)

	return &tplRenderer{
		logger:     t.logger,
		tpls:       t.tpls,
		CommonData: c,
	}
}

func (t *tplRenderer) RenderResponse(ctx context.Context, w http.ResponseWriter, r *http.Request, tplName string, data any) {
	renderer := t.withCtxData(ctx).WithRequestData(r)

	d := struct {
		Common map[string]any
		Data   any
	}{
		Common: renderer.CommonData,
		Data:   data,
	}
	// Templates start with blank lines, content sniffing would not detect HTML.
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	err := renderer.tpls.ExecuteTemplate(w, tplName, d)
	if err != nil {
		t.logger.Errorf("Could not render template: %s", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (t *tplRenderer) Render(ctx context.Context, r *http.Request, tplName string, data any) (string, error) {
	renderer := t.withCtxData(ctx).WithRequestData(r)

	d := struct {
		Common map[string]any
		Data   any
	}{
		Common: renderer.CommonData,
		Data:   data,
	}
	var b bytes.Buffer
	err := renderer.tpls.ExecuteTemplate(&b, tplName, d)
	if err != nil {
		return "", err
	}

	return b.String(), nil
}

func prettyPercent(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', 2, 64) + "%"
}

func prettyHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64) + "h"
}

var dateRangeLabels = map[conventions.DateRange]string{
	conventions.DateRangeYear:        "1 year",
	conventions.DateRangeSixMonths:   "6 months",
	conventions.DateRangeThreeMonths: "3 months",
	conventions.DateRangeOneMonth:    "1 month",
}

func dateRangeLabel(dr conventions.DateRange) string {
	if l, ok := dateRangeLabels[dr]; ok {
		return l
	}
	return string(dr)
}

// percentColorCSSClass returns the CSS class of an uptime based on its target.
func percentColorCSSClass(uptime, target float64) string {
	switch {
	case math.IsNaN(uptime) || math.IsNaN(target):
		return "is-unknown"
	case uptime >= target:
		return "is-ok"
	case uptime >= target-0.5:
		return "is-warning"
	default:
		return "is-critical"
	}
}
