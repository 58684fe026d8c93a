package plugin

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	PluginVersion = "color/v1"
	PluginID      = "uptimechart.dev/core/options/v1"
)

// DefaultOption is the option used for the names without color.
const DefaultOption = "default"

// ColorFor returns the color set on the options for the name. Names are
// matched case insensitive when there is no exact match.
func ColorFor(ctx context.Context, name string, meta, options map[string]string) (string, error) {
	if c, ok := options[name]; ok {
		return c, nil
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, name) {
			return options[k], nil
		}
	}

	if c, ok := options[DefaultOption]; ok {
		return c, nil
	}

	return "", fmt.Errorf("missing color for %q", name)
}
