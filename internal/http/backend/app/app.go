package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rcreports/uptimechart/internal/chart/bullet"
	"github.com/rcreports/uptimechart/internal/chart/color"
	"github.com/rcreports/uptimechart/internal/chart/history"
	"github.com/rcreports/uptimechart/internal/chart/svg"
	"github.com/rcreports/uptimechart/internal/config"
	"github.com/rcreports/uptimechart/internal/http/backend/metrics"
	"github.com/rcreports/uptimechart/internal/http/backend/storage"
	"github.com/rcreports/uptimechart/internal/log"
	pluginenginecolor "github.com/rcreports/uptimechart/internal/pluginengine/color"
)

// ColorPluginGetter knows how to get color plugins.
type ColorPluginGetter interface {
	GetColorPlugin(ctx context.Context, id string) (*pluginenginecolor.Plugin, error)
}

type AppConfig struct {
	UptimeGetter      storage.UptimeGetter
	HistoryGetter     storage.HistoryGetter
	ColorPluginGetter ColorPluginGetter
	Config            *config.Config
	Renderer          *svg.Renderer
	Sessions          *SessionStore
	MetricsRecorder   metrics.Recorder
	Logger            log.Logger
	TimeNowFunc       func() time.Time
}

func (c *AppConfig) defaults() error {
	if c.UptimeGetter == nil {
		return fmt.Errorf("uptime getter is required")
	}

	if c.HistoryGetter == nil {
		return fmt.Errorf("history getter is required")
	}

	if c.Config == nil {
		cfg := config.DefaultConfig()
		c.Config = &cfg
	}

	if c.Config.Colors.Mode == config.ColorModePlugin && c.ColorPluginGetter == nil {
		return fmt.Errorf("color plugin getter is required on %s color mode", config.ColorModePlugin)
	}

	if c.Renderer == nil {
		r, err := svg.NewRenderer()
		if err != nil {
			return fmt.Errorf("could not create SVG renderer: %w", err)
		}
		c.Renderer = r
	}

	if c.Sessions == nil {
		c.Sessions = NewSessionStore(0, c.TimeNowFunc)
	}

	if c.MetricsRecorder == nil {
		c.MetricsRecorder = metrics.NoopRecorder
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app"})

	if c.TimeNowFunc == nil {
		c.TimeNowFunc = time.Now
	}

	return nil
}

type App struct {
	uptimeGetter      storage.UptimeGetter
	historyGetter     storage.HistoryGetter
	colorPluginGetter ColorPluginGetter
	bulletChart       *bullet.Chart
	historyChart      *history.Chart
	colors            config.Colors
	palette           color.Palette
	renderer          *svg.Renderer
	sessions          *SessionStore
	metricsRecorder   metrics.Recorder
	logger            log.Logger
	timeNowFunc       func() time.Time
}

func NewApp(config AppConfig) (*App, error) {
	if err := config.defaults(); err != nil {
		return nil, err
	}

	bulletChart, err := bullet.New(config.Config.Bullet)
	if err != nil {
		return nil, err
	}

	historyChart, err := history.New(config.Config.History)
	if err != nil {
		return nil, err
	}

	palette := color.Category10()
	if len(config.Config.Colors.Palette) > 0 {
		palette, err = color.ParsePalette(config.Config.Colors.Palette)
		if err != nil {
			return nil, fmt.Errorf("invalid palette: %w", err)
		}
	}

	return &App{
		uptimeGetter:      config.UptimeGetter,
		historyGetter:     config.HistoryGetter,
		colorPluginGetter: config.ColorPluginGetter,
		bulletChart:       bulletChart,
		historyChart:      historyChart,
		colors:            config.Config.Colors,
		palette:           palette,
		renderer:          config.Renderer,
		sessions:          config.Sessions,
		metricsRecorder:   config.MetricsRecorder,
		logger:            config.Logger,
		timeNowFunc:       config.TimeNowFunc,
	}, nil
}
