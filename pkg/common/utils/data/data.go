package data

import "maps"

// MergeMaps merges the maps in order into a new one, latest wins.
func MergeMaps[M ~map[K]V, K comparable, V any](ms ...M) M {
	m := make(M)
	for _, m2 := range ms {
		maps.Copy(m, m2)
	}
	return m
}

type mss = map[string]string

// MergeLabels merges string maps (labels, plugin metadata...) in order, latest wins.
func MergeLabels(ms ...mss) mss {
	return MergeMaps(ms...)
}
