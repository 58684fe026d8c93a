package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rcreports/uptimechart/pkg/common/conventions"
)

// Cell is the uptime of a single sub entity of a service (e.g a data center cell).
type Cell struct {
	Name   string  `json:"name" yaml:"name" validate:"required,name"`
	Uptime float64 `json:"uptime" yaml:"uptime" validate:"percent"`
}

// BulletDatum is the uptime summary of a service, rendered as one bullet gauge.
type BulletDatum struct {
	Service  string  `json:"service" yaml:"service" validate:"required,name"`
	National float64 `json:"national" yaml:"national" validate:"percent"`
	Target   float64 `json:"target" yaml:"target" validate:"percent"`
	Cells    []Cell  `json:"cells" yaml:"cells" validate:"required,min=1,dive"`
}

// CellNames returns the names of all the cells of the datum in order.
func (b BulletDatum) CellNames() []string {
	names := make([]string, 0, len(b.Cells))
	for _, c := range b.Cells {
		names = append(names, c.Name)
	}
	return names
}

// Outage is a time span where a service was down. Start and End are
// milliseconds since epoch.
type Outage struct {
	Start   int64 `json:"start" yaml:"start" validate:"gte=0"`
	End     int64 `json:"end" yaml:"end" validate:"gte=0"`
	Planned bool  `json:"planned" yaml:"planned"`
}

// StartTime returns the start as a time.
func (o Outage) StartTime() time.Time { return time.UnixMilli(o.Start).UTC() }

// EndTime returns the end as a time.
func (o Outage) EndTime() time.Time { return time.UnixMilli(o.End).UTC() }

// Duration returns the absolute duration of the outage.
func (o Outage) Duration() time.Duration {
	d := time.Duration(o.End-o.Start) * time.Millisecond
	if d < 0 {
		return -d
	}
	return d
}

// Overlaps returns true if the outage overlaps the [from, to] window.
func (o Outage) Overlaps(from, to time.Time) bool {
	return o.End >= from.UnixMilli() && o.Start <= to.UnixMilli()
}

// HistoryDatum is the outage history of a service, rendered as one timeline row.
type HistoryDatum struct {
	Service string   `json:"service" yaml:"service" validate:"required,name"`
	Outages []Outage `json:"outages" yaml:"outages" validate:"dive"`
}

// UptimeReport groups all the data the charts can render.
type UptimeReport struct {
	Bullets []BulletDatum  `json:"uptime" yaml:"uptime" validate:"dive"`
	History []HistoryDatum `json:"history" yaml:"history" validate:"dive"`
}

// Validate validates the report.
func (u UptimeReport) Validate() error {
	return modelValidate.Struct(u)
}

// Validate validates the bullet data.
func (b BulletDatum) Validate() error {
	return modelValidate.Struct(b)
}

// Validate validates the history data.
func (h HistoryDatum) Validate() error {
	return modelValidate.Struct(h)
}

var modelValidate = func() *validator.Validate {
	v := validator.New()
	mustRegisterValidation(v, "name", validateName)
	mustRegisterValidation(v, "percent", validatePercent)
	v.RegisterStructValidation(validateOutage, Outage{})
	return v
}()

// mustRegisterValidation is a helper so we panic on start if we can't register a validator.
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	err := v.RegisterValidation(tag, fn)
	if err != nil {
		panic(err)
	}
}

// validateName implements validator.CustomTypeFunc by validating a service or cell name.
func validateName(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return conventions.NameRegexp.MatchString(s)
}

// validatePercent implements validator.CustomTypeFunc by validating a percentage,
// NaN is not a percentage.
func validatePercent(fl validator.FieldLevel) bool {
	f, ok := fl.Field().Interface().(float64)
	if !ok {
		return false
	}

	return f >= 0 && f <= 100
}

func validateOutage(sl validator.StructLevel) {
	o, ok := sl.Current().Interface().(Outage)
	if !ok {
		sl.ReportError(o, "", "", "outage", "")
		return
	}

	if o.End < o.Start {
		sl.ReportError(o.End, "End", "End", "gtefield", fmt.Sprintf("%d", o.Start))
	}
}
