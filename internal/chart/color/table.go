package color

import (
	utilsdata "github.com/rcreports/uptimechart/pkg/common/utils/data"
)

// DefaultColor is the color returned for names missing from a table.
const DefaultColor = "black"

// Table maps a name (cell, data center, faculty...) to a CSS color.
type Table map[string]string

// Lookup returns the color of the name in the table, if missing it will
// return DefaultColor.
func Lookup(t Table, name string) string {
	c, ok := t[name]
	if !ok || c == "" {
		return DefaultColor
	}
	return c
}

// Func returns the color for a name.
type Func func(name string) string

// FromTable returns a color Func backed by a table.
func FromTable(t Table) Func {
	return func(name string) string { return Lookup(t, name) }
}

// Constant returns a color Func that always returns the same color.
func Constant(c string) Func {
	return func(string) string { return c }
}

// Merge returns a new table with all the tables merged, latest wins.
func Merge(ts ...Table) Table {
	return utilsdata.MergeMaps(ts...)
}

// CellColors are the colors of the data center cells.
var CellColors = Table{
	"QH2":                "chocolate",
	"QH2-UoM":            "green",
	"NP":                 "blue",
	"QH2 and NP":         "darkblue",
	"Other data centers": "lightblue",
}

// DatacenterColors are the colors of the data centers.
var DatacenterColors = Table{
	"queensbury 1":       "chocolate",
	"queensbury 2":       "green",
	"noble park":         "blue",
	"other data centers": "lightblue",
}

// FacultyColors are the colors of the faculties.
var FacultyColors = Table{
	"VCAMCM":   "#1f77b4",
	"VAS":      "#ff7f0e",
	"FoS":      "#2ca02c",
	"MDHS":     "#d62728",
	"MLS":      "#9467bd",
	"MSE":      "#8c564b",
	"MGSE":     "#e377c2",
	"FBE":      "#7f7f7f",
	"FoA":      "#bcbd22",
	"ABP":      "#17becf",
	"Unknown":  "blue",
	"Services": "red",
	"External": "green",
}

// StorageColors are the colors of the storage product types.
var StorageColors = Table{
	"Market":        "blue",
	"Computational": "lightblue",
	"Vault":         "orange",
}

// Tables are the known tables by ID.
var Tables = map[string]Table{
	"cell":       CellColors,
	"datacenter": DatacenterColors,
	"faculty":    FacultyColors,
	"storage":    StorageColors,
}
