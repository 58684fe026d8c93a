package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rcreports/uptimechart/internal/chart/bullet"
	"github.com/rcreports/uptimechart/internal/chart/color"
	"github.com/rcreports/uptimechart/internal/chart/history"
	"github.com/rcreports/uptimechart/pkg/common/validation"
)

// ColorMode is how the measure colors are decided.
type ColorMode string

const (
	// ColorModeTable uses a fixed name to color table.
	ColorModeTable ColorMode = "table"
	// ColorModePalette assigns palette colors to names, keeping them between renders of the same session.
	ColorModePalette ColorMode = "palette"
	// ColorModePlugin asks a color plugin.
	ColorModePlugin ColorMode = "plugin"
)

// Config is the dashboard configuration.
type Config struct {
	Bullet     bullet.Config
	History    history.Config
	Colors     Colors
	Prometheus Prometheus
}

// Colors is the measure colors configuration.
type Colors struct {
	Mode          ColorMode   `validate:"required,oneof=table palette plugin"`
	Table         color.Table `validate:"dive,keys,required,endkeys,css_color"`
	Palette       []string    `validate:"required_if=Mode palette,dive,hexcolor"`
	PluginID      string      `validate:"required_if=Mode plugin"`
	PluginOptions map[string]string
}

// Prometheus is the Prometheus data backend configuration.
type Prometheus struct {
	Selector          map[string]string `validate:"prom_labels"`
	RefreshInterval   time.Duration     `validate:"gte=1m"`
	HistoryResolution int               `validate:"gte=10,lte=11000"`
	Queries           PrometheusQueries
}

// PrometheusQueries are the query templates of the Prometheus data backend.
type PrometheusQueries struct {
	CellUptime     string `validate:"required,prom_expr"`
	NationalUptime string `validate:"required,prom_expr"`
	Target         string `validate:"required,prom_expr"`
	Outages        string `validate:"required,prom_expr"`
}

// Default Prometheus queries, based on the recording rules of the uptime exporter.
const (
	DefaultCellUptimeQuery     = `100 * avg_over_time(uptimechart:cell_up:ratio{{ .selector }}[{{ .window }}])`
	DefaultNationalUptimeQuery = `100 * avg_over_time(uptimechart:service_up:ratio{{ .selector }}[{{ .window }}])`
	DefaultTargetQuery         = `max by (service) (uptimechart:service_target:percent{{ .selector }})`
	DefaultOutagesQuery        = `max by (service, planned) (uptimechart:service_outage{{ .selector }})`
)

// DefaultConfig returns the configuration used when no configuration file is set.
func DefaultConfig() Config {
	return Config{
		Bullet:  bullet.DefaultConfig(),
		History: history.DefaultConfig(),
		Colors: Colors{
			Mode:    ColorModeTable,
			Table:   color.Merge(color.CellColors),
			Palette: color.Category10().Hexes(),
		},
		Prometheus: Prometheus{
			RefreshInterval:   5 * time.Minute,
			HistoryResolution: 10000,
			Queries: PrometheusQueries{
				CellUptime:     DefaultCellUptimeQuery,
				NationalUptime: DefaultNationalUptimeQuery,
				Target:         DefaultTargetQuery,
				Outages:        DefaultOutagesQuery,
			},
		},
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	err := configValidate.Struct(c.Colors)
	if err != nil {
		return fmt.Errorf("invalid colors: %w", err)
	}

	err = configValidate.Struct(c.Prometheus)
	if err != nil {
		return fmt.Errorf("invalid prometheus: %w", err)
	}

	_, err = bullet.New(c.Bullet)
	if err != nil {
		return err
	}

	_, err = history.New(c.History)
	if err != nil {
		return err
	}

	return nil
}

var configValidate = func() *validator.Validate {
	v := validator.New()
	mustRegisterValidation(v, "css_color", validateCSSColor)
	mustRegisterValidation(v, "prom_expr", validatePromExpr)
	mustRegisterValidation(v, "prom_labels", validatePromLabels)
	return v
}()

// mustRegisterValidation is a helper so we panic on start if we can't register a validator.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	err := v.RegisterValidation(tag, fn)
	if err != nil {
		panic(err)
	}
}

// validateCSSColor implements validator.CustomTypeFunc by validating a CSS color.
func validateCSSColor(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return color.IsCSS(s)
}

// validatePromExpr implements validator.CustomTypeFunc by validating
// a Prometheus expression template.
func validatePromExpr(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return validation.PromQLValidator.ValidateQueryExpression(s) == nil
}

// validatePromLabels implements validator.CustomTypeFunc by validating
// a Prometheus label set.
func validatePromLabels(fl validator.FieldLevel) bool {
	m, ok := fl.Field().Interface().(map[string]string)
	if !ok {
		return false
	}

	return validation.PromQLValidator.ValidateLabels(m) == nil
}
