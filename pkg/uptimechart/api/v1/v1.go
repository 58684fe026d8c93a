// Package v1
//
// Example YAML dashboard configuration:
//
//	version: "uptimechart/v1"
//	bullet:
//	  title: "Uptime"
//	  subtitle: "% Available"
//	  margin: {top: 5, right: 40, bottom: 20, left: 120}
//	history:
//	  heading: "Uptime History"
//	  tooltip:
//	    show: 200ms
//	    hide: 500ms
//	colors:
//	  mode: table
//	  table: cell
//	  custom:
//	    QH2-UoM: "#2ca02c"
//	prometheus:
//	  selector:
//	    region: melbourne
//	  refresh_interval: 5m
//	  queries:
//	    cell_uptime: 100 * avg_over_time(uptimechart:cell_up:ratio{{ .selector }}[{{ .window }}])
//	    national_uptime: 100 * avg_over_time(uptimechart:service_up:ratio{{ .selector }}[{{ .window }}])
//	    target: max by (service) (uptimechart:service_target:percent{{ .selector }})
//	    outages: max by (service, planned) (uptimechart:service_outage{{ .selector }})
package v1

const Version = "uptimechart/v1"

// Config is the dashboard configuration. Everything is optional.
type Config struct {
	// Version is the version of the configuration format.
	Version    string       `yaml:"version"`
	Bullet     BulletChart  `yaml:"bullet,omitempty"`
	History    HistoryChart `yaml:"history,omitempty"`
	Colors     Colors       `yaml:"colors,omitempty"`
	Prometheus Prometheus   `yaml:"prometheus,omitempty"`
}

// Margin is a chart margin in pixels.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// BulletChart is the uptime bullet chart configuration.
type BulletChart struct {
	// Width is the chart width, if missing the container width is used.
	Width        float64 `yaml:"width,omitempty"`
	MinimumWidth float64 `yaml:"minimum_width,omitempty"`
	Margin       *Margin `yaml:"margin,omitempty"`
	// Title is the gauge title prefix, an empty string disables the prefix.
	Title    *string `yaml:"title,omitempty"`
	Subtitle string  `yaml:"subtitle,omitempty"`
	NoData   string  `yaml:"no_data,omitempty"`
}

// HistoryChart is the uptime history chart configuration.
type HistoryChart struct {
	Width        float64 `yaml:"width,omitempty"`
	MinimumWidth float64 `yaml:"minimum_width,omitempty"`
	Margin       *Margin `yaml:"margin,omitempty"`
	Heading      string  `yaml:"heading,omitempty"`
	NoData       string  `yaml:"no_data,omitempty"`
	Tooltip      Tooltip `yaml:"tooltip,omitempty"`
}

// Tooltip has the tooltip transitions in Prometheus duration format (e.g `200ms`).
type Tooltip struct {
	Show string `yaml:"show,omitempty"`
	Hide string `yaml:"hide,omitempty"`
}

// Colors is the configuration of the measure colors.
type Colors struct {
	// Mode is one of `table` (default), `palette` or `plugin`.
	Mode string `yaml:"mode,omitempty"`
	// Table is one of the builtin tables: `cell` (default), `datacenter`, `faculty` or `storage`.
	Table string `yaml:"table,omitempty"`
	// Custom colors are merged over the table ones.
	Custom map[string]string `yaml:"custom,omitempty"`
	// Palette are the `#rrggbb` colors used on palette mode, if missing category10 is used.
	Palette []string     `yaml:"palette,omitempty"`
	Plugin  *ColorPlugin `yaml:"plugin,omitempty"`
}

// ColorPlugin is the color plugin used on plugin mode.
type ColorPlugin struct {
	ID      string            `yaml:"id"`
	Options map[string]string `yaml:"options,omitempty"`
}

// Prometheus is the Prometheus data backend configuration.
type Prometheus struct {
	// Selector labels are available on the queries as `{{ .selector }}`.
	Selector map[string]string `yaml:"selector,omitempty"`
	// RefreshInterval is the background cache refresh interval in Prometheus duration format.
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
	// HistoryResolution is the number of points requested for the outage history.
	HistoryResolution int               `yaml:"history_resolution,omitempty"`
	Queries           PrometheusQueries `yaml:"queries,omitempty"`
}

// PrometheusQueries are PromQL query templates, `{{ .window }}` has the date range duration.
type PrometheusQueries struct {
	// CellUptime returns a vector with the uptime percent by `service` and `cell`.
	CellUptime string `yaml:"cell_uptime,omitempty"`
	// NationalUptime returns a vector with the uptime percent by `service`.
	NationalUptime string `yaml:"national_uptime,omitempty"`
	// Target returns a vector with the uptime target percent by `service`.
	Target string `yaml:"target,omitempty"`
	// Outages returns series by `service` and `planned` that are non zero while the service is down.
	Outages string `yaml:"outages,omitempty"`
}
