package history

import (
	"fmt"
	"time"

	"github.com/rcreports/uptimechart/internal/chart/dispatch"
	"github.com/rcreports/uptimechart/internal/chart/shape"
)

// Config is the history chart configuration. A Chart copies it on creation.
type Config struct {
	Margin shape.Margin
	// Width is the full chart width, if zero the container width is used.
	Width        float64
	MinimumWidth float64
	BarHeight    float64
	LineSpacing  float64
	// PaddingLeft is the x of the service labels and headings, relative to the
	// left margin (negative to be drawn on the margin).
	PaddingLeft        float64
	PaddingBottom      float64
	PaddingTopHeading  float64
	HeadingText        string
	NoData             string
	Tooltip            dispatch.TooltipConfig
	TransitionDuration time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Margin:            shape.Margin{Top: 70, Right: 40, Bottom: 20, Left: 120},
		MinimumWidth:      800,
		BarHeight:         18,
		LineSpacing:       14,
		PaddingLeft:       -100,
		PaddingBottom:     10,
		PaddingTopHeading: -50,
		HeadingText:       "Uptime History",
		NoData:            "No Data Available.",
		Tooltip: dispatch.TooltipConfig{
			ShowDuration: 200 * time.Millisecond,
			HideDuration: 500 * time.Millisecond,
		},
	}
}

func (c Config) validate() error {
	if c.Width < 0 || c.MinimumWidth < 0 {
		return fmt.Errorf("width and minimum width can't be negative")
	}

	if c.BarHeight <= 0 {
		return fmt.Errorf("bar height must be positive")
	}

	if c.LineSpacing < 0 {
		return fmt.Errorf("line spacing can't be negative")
	}

	return nil
}

// WithWidth returns a copy of the configuration with the width set.
func (c Config) WithWidth(w float64) Config {
	c.Width = w
	return c
}

// WithHeading returns a copy of the configuration with the heading set.
func (c Config) WithHeading(h string) Config {
	c.HeadingText = h
	return c
}
