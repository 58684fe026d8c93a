package plugin

import "embed"

var (
	//go:embed color
	// Default color plugins. These are the default set of color plugins that are embedded in the binary.
	EmbeddedDefaultColorPlugins embed.FS
)
