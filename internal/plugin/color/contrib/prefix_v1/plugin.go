package plugin

import (
	"context"
	"fmt"
	"strings"
)

const (
	PluginVersion = "color/v1"
	PluginID      = "uptimechart.dev/contrib/prefix/v1"
)

const metaDateRange = "uptimechart_date_range"

// ColorFor colors the names by their longest matching prefix on the options.
//
// Options prefixed with a date range and a colon (e.g `oneMonth:QH2`) are only
// used on that date range and win over the plain ones.
func ColorFor(ctx context.Context, name string, meta, options map[string]string) (string, error) {
	dateRange := meta[metaDateRange]

	best := ""
	bestLen := -1
	bestRange := false
	for k, c := range options {
		prefix := k
		isRange := false
		i := strings.Index(k, ":")
		if i >= 0 {
			if k[:i] != dateRange {
				continue
			}
			prefix = k[i+1:]
			isRange = true
		}

		if !strings.HasPrefix(name, prefix) {
			continue
		}

		if !betterMatch(isRange, len(prefix), c, bestRange, bestLen, best) {
			continue
		}
		best = c
		bestLen = len(prefix)
		bestRange = isRange
	}

	if bestLen < 0 {
		return "", fmt.Errorf("no prefix matches %q", name)
	}

	return best, nil
}

// betterMatch returns true if the new match wins over the current best one:
// date range matches first, then the longest prefix, then the smallest color.
func betterMatch(isRange bool, prefixLen int, color string, bestRange bool, bestLen int, best string) bool {
	if isRange != bestRange {
		return isRange
	}
	if prefixLen != bestLen {
		return prefixLen > bestLen
	}
	return color < best
}
