package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/rcreports/uptimechart/internal/chart/color"
	"github.com/rcreports/uptimechart/internal/chart/shape"
	utilsprom "github.com/rcreports/uptimechart/pkg/common/utils/prometheus"
	apiv1 "github.com/rcreports/uptimechart/pkg/uptimechart/api/v1"
)

var configTypeV1Regex = regexp.MustCompile(`(?m)^version: +['"]?uptimechart/v1['"]?\r?\n? *$`)

// YAMLLoader knows how to load uptimechart YAML configurations and converts them to a Config.
const YAMLLoader = yamlLoader(false)

type yamlLoader bool

// IsConfigType returns true if the data is a v1 configuration.
func (yamlLoader) IsConfigType(ctx context.Context, data []byte) bool {
	return configTypeV1Regex.Match(data)
}

// LoadFile loads the configuration from a file, an empty path returns the default configuration.
func (l yamlLoader) LoadFile(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		c := DefaultConfig()
		return &c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	return l.Load(ctx, data)
}

// Load loads and validates a configuration.
func (l yamlLoader) Load(ctx context.Context, data []byte) (*Config, error) {
	c, err := l.LoadAPI(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("could not load API: %w", err)
	}

	m, err := l.MapAPIToModel(ctx, *c)
	if err != nil {
		return nil, fmt.Errorf("could not map to model: %w", err)
	}

	err = m.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return m, nil
}

// LoadAPI unmarshals the configuration API.
func (l yamlLoader) LoadAPI(ctx context.Context, data []byte) (*apiv1.Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration is required")
	}

	c := apiv1.Config{}
	err := yaml.UnmarshalStrict(data, &c)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshall YAML configuration correctly: %w", err)
	}

	if c.Version != apiv1.Version {
		return nil, fmt.Errorf("invalid configuration version, should be %q", apiv1.Version)
	}

	return &c, nil
}

// MapAPIToModel maps the API over the default configuration.
func (l yamlLoader) MapAPIToModel(ctx context.Context, c apiv1.Config) (*Config, error) {
	m := DefaultConfig()

	// Bullet.
	if c.Bullet.Width != 0 {
		m.Bullet.Width = c.Bullet.Width
	}
	if c.Bullet.MinimumWidth != 0 {
		m.Bullet.MinimumWidth = c.Bullet.MinimumWidth
	}
	if c.Bullet.Margin != nil {
		m.Bullet.Margin = mapMargin(*c.Bullet.Margin)
	}
	if c.Bullet.Title != nil {
		m.Bullet.Title = *c.Bullet.Title
	}
	if c.Bullet.Subtitle != "" {
		m.Bullet.Subtitle = c.Bullet.Subtitle
	}
	if c.Bullet.NoData != "" {
		m.Bullet.NoData = c.Bullet.NoData
	}

	// History.
	if c.History.Width != 0 {
		m.History.Width = c.History.Width
	}
	if c.History.MinimumWidth != 0 {
		m.History.MinimumWidth = c.History.MinimumWidth
	}
	if c.History.Margin != nil {
		m.History.Margin = mapMargin(*c.History.Margin)
	}
	if c.History.Heading != "" {
		m.History.HeadingText = c.History.Heading
	}
	if c.History.NoData != "" {
		m.History.NoData = c.History.NoData
	}
	if c.History.Tooltip.Show != "" {
		d, err := utilsprom.PromStrToTimeDuration(c.History.Tooltip.Show)
		if err != nil {
			return nil, fmt.Errorf("invalid tooltip show duration: %w", err)
		}
		m.History.Tooltip.ShowDuration = d
	}
	if c.History.Tooltip.Hide != "" {
		d, err := utilsprom.PromStrToTimeDuration(c.History.Tooltip.Hide)
		if err != nil {
			return nil, fmt.Errorf("invalid tooltip hide duration: %w", err)
		}
		m.History.Tooltip.HideDuration = d
	}

	// Colors.
	if c.Colors.Mode != "" {
		m.Colors.Mode = ColorMode(strings.ToLower(c.Colors.Mode))
	}
	if c.Colors.Table != "" {
		t, ok := color.Tables[c.Colors.Table]
		if !ok {
			return nil, fmt.Errorf("unknown color table %q", c.Colors.Table)
		}
		m.Colors.Table = t
	}
	m.Colors.Table = color.Merge(m.Colors.Table, c.Colors.Custom)
	if len(c.Colors.Palette) > 0 {
		m.Colors.Palette = c.Colors.Palette
	}
	if c.Colors.Plugin != nil {
		m.Colors.PluginID = c.Colors.Plugin.ID
		m.Colors.PluginOptions = c.Colors.Plugin.Options
	}

	// Prometheus.
	p := c.Prometheus
	m.Prometheus.Selector = p.Selector
	if p.RefreshInterval != "" {
		d, err := utilsprom.PromStrToTimeDuration(p.RefreshInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh interval: %w", err)
		}
		m.Prometheus.RefreshInterval = d
	}
	if p.HistoryResolution != 0 {
		m.Prometheus.HistoryResolution = p.HistoryResolution
	}
	if p.Queries.CellUptime != "" {
		m.Prometheus.Queries.CellUptime = p.Queries.CellUptime
	}
	if p.Queries.NationalUptime != "" {
		m.Prometheus.Queries.NationalUptime = p.Queries.NationalUptime
	}
	if p.Queries.Target != "" {
		m.Prometheus.Queries.Target = p.Queries.Target
	}
	if p.Queries.Outages != "" {
		m.Prometheus.Queries.Outages = p.Queries.Outages
	}

	return &m, nil
}

func mapMargin(m apiv1.Margin) shape.Margin {
	return shape.Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
}
