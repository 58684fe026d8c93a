// package plugin has all the API to load chart color plugins using Yaegi.
// It uses aliases and common types to easy the dynamic plugin load so plugins
// don't need to import this package as a library.
package plugin

import "context"

// Version is this plugin type version.
const Version = "color/v1"

// PluginVersion is the version of the plugin.
type PluginVersion = string

// PluginID is the ID of the plugin.
type PluginID = string

// Known plugin symbol names.
const (
	PluginIDName      = "PluginID"
	PluginVersionName = "PluginVersion"
	PluginFuncName    = "ColorFor"
)

// Metadata keys passed to the plugin.
const (
	MetaChart     = "uptimechart_chart"
	MetaDateRange = "uptimechart_date_range"
)

// ColorFor returns the CSS color of a chart element name (e.g a cell or a
// datacenter). Options are the static options of the plugin set on the
// configuration.
//
// This is the type the color plugins need to implement.
type ColorFor = func(ctx context.Context, name string, meta, options map[string]string) (color string, err error)
