package testing

import (
	"context"
	"fmt"
	"os"

	pluginenginecolor "github.com/rcreports/uptimechart/internal/pluginengine/color"
)

type TestPluginConfig struct {
	PluginFilePath string
}

func (c *TestPluginConfig) defaults() error {
	if c.PluginFilePath == "" {
		c.PluginFilePath = "./plugin.go"
	}

	return nil
}

// NewTestPlugin is a helper util to load a color plugin using the same engine
// uptimechart uses at runtime, so unsupported features or engine bugs are
// detected on the plugin tests.
func NewTestPlugin(ctx context.Context, config TestPluginConfig) (*pluginenginecolor.Plugin, error) {
	err := config.defaults()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pluginSource, err := os.ReadFile(config.PluginFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not read plugin source code: %w", err)
	}

	plugin, err := pluginenginecolor.PluginLoader.LoadRawPlugin(ctx, string(pluginSource))
	if err != nil {
		return nil, fmt.Errorf("could not load plugin source code: %w", err)
	}

	return plugin, nil
}
