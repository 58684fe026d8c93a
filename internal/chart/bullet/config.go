package bullet

import (
	"fmt"
	"time"

	"github.com/rcreports/uptimechart/internal/chart/color"
	"github.com/rcreports/uptimechart/internal/chart/shape"
)

// Config is the bullet chart configuration. A Chart copies it on creation, so
// modifying a Config doesn't affect the charts already created with it.
type Config struct {
	Margin shape.Margin
	// Width is the full chart width, if zero the container width is used.
	Width float64
	// MinimumWidth is the minimum width of the gauges (without margins).
	MinimumWidth float64
	// BulletHeight is the height of each measure bar.
	BulletHeight float64
	// BulletSpacing is the vertical space between the measure bars.
	BulletSpacing float64
	// TitleHeight is the vertical space of the gauge title.
	TitleHeight float64
	// TitlePadding is the vertical space between the title and the gauge.
	TitlePadding float64
	// Title is the prefix of the service name on the gauge title.
	Title              string
	Subtitle           string
	RangeLabels        [2]string
	TargetLabel        string
	NoData             string
	Color              color.Func
	TransitionDuration time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Margin:        shape.Margin{Top: 5, Right: 40, Bottom: 20, Left: 120},
		MinimumWidth:  800,
		BulletHeight:  15,
		BulletSpacing: 15,
		TitleHeight:   20,
		TitlePadding:  5,
		Title:         "Uptime",
		Subtitle:      "% Available",
		RangeLabels:   [2]string{"Maximum", "National"},
		TargetLabel:   "Target",
		NoData:        "No Data Available.",
		Color:         color.Constant("#1f77b4"),
	}
}

func (c *Config) validate() error {
	if c.Width < 0 {
		return fmt.Errorf("width can't be negative")
	}

	if c.MinimumWidth < 0 {
		return fmt.Errorf("minimum width can't be negative")
	}

	if c.BulletHeight <= 0 {
		return fmt.Errorf("bullet height must be positive")
	}

	if c.BulletSpacing < 0 || c.TitleHeight < 0 || c.TitlePadding < 0 {
		return fmt.Errorf("spacing, title height and title padding can't be negative")
	}

	if c.Color == nil {
		c.Color = color.Constant("#1f77b4")
	}

	return nil
}

// WithWidth returns a copy of the configuration with the width set.
func (c Config) WithWidth(w float64) Config {
	c.Width = w
	return c
}

// WithColor returns a copy of the configuration with the color function set.
func (c Config) WithColor(f color.Func) Config {
	c.Color = f
	return c
}

// WithTitle returns a copy of the configuration with the title set.
func (c Config) WithTitle(t string) Config {
	c.Title = t
	return c
}
