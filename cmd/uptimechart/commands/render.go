package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	backendapp "github.com/rcreports/uptimechart/internal/http/backend/app"
	storagefile "github.com/rcreports/uptimechart/internal/http/backend/storage/file"
	"github.com/rcreports/uptimechart/internal/log"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
)

type renderCommand struct {
	chart        string
	input        string
	out          string
	configPath   string
	pluginsPaths []string
	width        float64
	dateRange    string
	now          string
}

// NewRenderCommand returns the render command.
func NewRenderCommand(app *kingpin.Application) Command {
	c := &renderCommand{}
	cmd := app.Command("render", "Renders a chart of an uptime report as SVG.")
	cmd.Flag("chart", "The chart to render.").Default(backendapp.ChartBullet).EnumVar(&c.chart, backendapp.ChartBullet, backendapp.ChartHistory)
	cmd.Flag("input", "Report data input file path. If `-` it will use stdin.").Short('i').Required().StringVar(&c.input)
	cmd.Flag("out", "Rendered chart output file path. If `-` it will use stdout.").Short('o').Default("-").StringVar(&c.out)
	cmd.Flag("config", "The configuration file path.").Short('c').StringVar(&c.configPath)
	cmd.Flag("plugins-path", "The path to color plugins (can be repeated).").Short('p').StringsVar(&c.pluginsPaths)
	cmd.Flag("width", "The container width, if not set the configured or default width is used.").Float64Var(&c.width)
	cmd.Flag("date-range", "The date range of the uptime summaries, used by the color plugins.").Default(string(conventions.DateRangeYear)).StringVar(&c.dateRange)
	cmd.Flag("now", "The render time in RFC3339 format, the history chart shows the year before it. Defaults to current time.").StringVar(&c.now)

	return c
}

func (r renderCommand) Name() string { return "render" }
func (r renderCommand) Run(ctx context.Context, config RootConfig) error {
	logger := config.Logger.WithValues(log.Kv{"command": r.Name(), "chart": r.chart})

	now := time.Now()
	if r.now != "" {
		t, err := time.Parse(time.RFC3339, r.now)
		if err != nil {
			return fmt.Errorf("invalid render time: %w", err)
		}
		now = t
	}

	var in io.Reader = config.Stdin
	if r.input != "-" {
		f, err := os.Open(r.input)
		if err != nil {
			return fmt.Errorf("could not open report file: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("could not read report data: %w", err)
	}

	report, err := storagefile.LoadReport(data)
	if err != nil {
		return fmt.Errorf("could not load report: %w", err)
	}

	plugins, err := newColorPluginRepo(logger, false, r.pluginsPaths)
	if err != nil {
		return fmt.Errorf("could not load color plugins: %w", err)
	}

	cfg, err := loadConfig(ctx, r.configPath, plugins)
	if err != nil {
		return err
	}

	repo := storagefile.NewReportRepository(*report)
	app, err := backendapp.NewApp(backendapp.AppConfig{
		UptimeGetter:      repo,
		HistoryGetter:     repo,
		ColorPluginGetter: plugins,
		Config:            cfg,
		Logger:            logger,
		TimeNowFunc:       func() time.Time { return now },
	})
	if err != nil {
		return fmt.Errorf("could not create app: %w", err)
	}

	var svg string
	switch r.chart {
	case backendapp.ChartHistory:
		resp, err := app.RenderHistory(ctx, backendapp.RenderHistoryRequest{Width: r.width})
		if err != nil {
			return fmt.Errorf("could not render history chart: %w", err)
		}
		svg = resp.SVG
	default:
		resp, err := app.RenderUptime(ctx, backendapp.RenderUptimeRequest{
			DateRange: conventions.DateRange(r.dateRange),
			Width:     r.width,
		})
		if err != nil {
			return fmt.Errorf("could not render uptime chart: %w", err)
		}
		svg = resp.SVG
	}

	var out io.Writer = config.Stdout
	if r.out != "-" {
		f, err := os.Create(r.out)
		if err != nil {
			return fmt.Errorf("could not create out file: %w", err)
		}
		defer f.Close()
		out = f
	}

	_, err = io.WriteString(out, svg)
	if err != nil {
		return fmt.Errorf("could not write chart: %w", err)
	}

	logger.WithValues(log.Kv{"out": r.out}).Debugf("Chart rendered")
	return nil
}
