package conventions

import "regexp"

// NameRegexpStr is the regex used to validate names (services, cells, report IDs...).
const NameRegexpStr = `^[A-Za-z0-9][-A-Za-z0-9_. ]*[A-Za-z0-9]$|^[A-Za-z0-9]$`

// NameRegexp is the compiled version of NameRegexpStr.
var NameRegexp = regexp.MustCompile(NameRegexpStr)

// Prometheus conventions used by the Prometheus data backend.
const (
	PromServiceLabelName = "service"
	PromCellLabelName    = "cell"
	PromPlannedLabelName = "planned"

	PromQueryTPLKeyWindow   = "window"
	PromQueryTPLKeySelector = "selector"
)

// TplWindowRegex is the regex used to check a query template has the window variable.
var TplWindowRegex = regexp.MustCompile(`{{ *\.window *}}`)

// DateRange is one of the dashboard date ranges.
type DateRange string

const (
	DateRangeYear        DateRange = "year"
	DateRangeSixMonths   DateRange = "sixMonths"
	DateRangeThreeMonths DateRange = "threeMonths"
	DateRangeOneMonth    DateRange = "oneMonth"
)

// DateRanges are all the ranges, widest first.
var DateRanges = []DateRange{
	DateRangeYear,
	DateRangeSixMonths,
	DateRangeThreeMonths,
	DateRangeOneMonth,
}

// IsValid returns true if the range is a known one.
func (d DateRange) IsValid() bool {
	for _, r := range DateRanges {
		if r == d {
			return true
		}
	}
	return false
}
