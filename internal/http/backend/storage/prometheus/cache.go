package prometheus

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"text/template"
	"time"

	prometheusv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	prommodel "github.com/prometheus/common/model"

	"github.com/rcreports/uptimechart/pkg/common/conventions"
	"github.com/rcreports/uptimechart/pkg/common/model"
	utilsprom "github.com/rcreports/uptimechart/pkg/common/utils/prometheus"
	utilstime "github.com/rcreports/uptimechart/pkg/common/utils/time"
)

type cache struct {
	UptimeByRange map[conventions.DateRange][]model.BulletDatum
	History       []model.HistoryDatum
}

type queryTemplates struct {
	cellUptime     *template.Template
	nationalUptime *template.Template
	target         *template.Template
	outages        *template.Template
}

func newQueryTemplates(q Queries) (queryTemplates, error) {
	parse := func(name, q string) (*template.Template, error) {
		t, err := template.New(name).Option("missingkey=error").Parse(q)
		if err != nil {
			return nil, fmt.Errorf("invalid %s query template: %w", name, err)
		}
		return t, nil
	}

	var (
		res queryTemplates
		err error
	)
	if res.cellUptime, err = parse("cell_uptime", q.CellUptime); err != nil {
		return res, err
	}
	if res.nationalUptime, err = parse("national_uptime", q.NationalUptime); err != nil {
		return res, err
	}
	if res.target, err = parse("target", q.Target); err != nil {
		return res, err
	}
	if res.outages, err = parse("outages", q.Outages); err != nil {
		return res, err
	}

	return res, nil
}

func (r *Repository) renderQuery(tpl *template.Template, window time.Duration) (string, error) {
	selector := ""
	if len(r.selector) > 0 {
		selector = utilsprom.LabelsToPromFilter(r.selector)
	}

	var b bytes.Buffer
	err := tpl.Execute(&b, map[string]string{
		conventions.PromQueryTPLKeyWindow:   utilsprom.TimeDurationToPromStr(window),
		conventions.PromQueryTPLKeySelector: selector,
	})
	if err != nil {
		return "", fmt.Errorf("could not render %s query: %w", tpl.Name(), err)
	}

	return b.String(), nil
}

func (r *Repository) refreshCaches(ctx context.Context) error {
	r.logger.Debugf("Refreshing background Prometheus caches")
	now := r.timeNowFunc()

	uptimeByRange := map[conventions.DateRange][]model.BulletDatum{}
	for _, dr := range conventions.DateRanges {
		from, err := utilstime.DateRangeStart(now, dr)
		if err != nil {
			return err
		}

		data, err := r.listUptimeSummaries(ctx, now, now.Sub(from))
		if err != nil {
			return fmt.Errorf("could not list %s uptime summaries: %w", dr, err)
		}
		uptimeByRange[dr] = data
	}

	history, err := r.listOutageHistory(ctx, utilstime.YearAgo(now), now)
	if err != nil {
		return fmt.Errorf("could not list outage history: %w", err)
	}

	// Update cache.
	r.mu.Lock()
	r.cache.UptimeByRange = uptimeByRange
	r.cache.History = history
	r.mu.Unlock()

	return nil
}

func (r *Repository) queryVector(ctx context.Context, tpl *template.Template, window time.Duration, ts time.Time) (prommodel.Vector, error) {
	query, err := r.renderQuery(tpl, window)
	if err != nil {
		return nil, err
	}

	result, warnings, err := r.promcli.Query(ctx, query, ts)
	if err != nil {
		return nil, fmt.Errorf("could not query prometheus: %w", err)
	}

	for _, warning := range warnings {
		r.logger.Warningf("Prometheus query warning: %v", warning)
	}

	vector, ok := result.(prommodel.Vector)
	if !ok {
		return nil, fmt.Errorf("unexpected result type: %T", result)
	}

	return vector, nil
}

func (r *Repository) listUptimeSummaries(ctx context.Context, now time.Time, window time.Duration) ([]model.BulletDatum, error) {
	cellVector, err := r.queryVector(ctx, r.queries.cellUptime, window, now)
	if err != nil {
		return nil, err
	}

	nationalVector, err := r.queryVector(ctx, r.queries.nationalUptime, window, now)
	if err != nil {
		return nil, err
	}

	targetVector, err := r.queryVector(ctx, r.queries.target, window, now)
	if err != nil {
		return nil, err
	}

	cellsByService := map[string][]model.Cell{}
	for _, sample := range cellVector {
		service := string(sample.Metric[conventions.PromServiceLabelName])
		cell := string(sample.Metric[conventions.PromCellLabelName])
		if service == "" || cell == "" {
			continue
		}
		cellsByService[service] = append(cellsByService[service], model.Cell{Name: cell, Uptime: float64(sample.Value)})
	}

	national := serviceValues(nationalVector)
	targets := serviceValues(targetVector)

	res := make([]model.BulletDatum, 0, len(cellsByService))
	for service, cells := range cellsByService {
		sort.SliceStable(cells, func(i, j int) bool { return cells[i].Name < cells[j].Name })

		n, ok := national[service]
		if !ok {
			n = meanUptime(cells)
			r.logger.Debugf("Missing national uptime for %q, using the cells mean", service)
		}

		t, ok := targets[service]
		if !ok {
			t = math.NaN()
			r.logger.Warningf("Missing uptime target for %q", service)
		}

		res = append(res, model.BulletDatum{
			Service:  service,
			National: n,
			Target:   t,
			Cells:    cells,
		})
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Service < res[j].Service })

	return res, nil
}

func (r *Repository) listOutageHistory(ctx context.Context, from, to time.Time) ([]model.HistoryDatum, error) {
	query, err := r.renderQuery(r.queries.outages, to.Sub(from))
	if err != nil {
		return nil, err
	}

	step := utilstime.CalculateStepsForTimeRange(from, to, r.historyResolution)
	r.logger.Debugf("Querying Prometheus with query=%q, from=%s, to=%s, step=%s", query, from, to, step)

	result, warnings, err := r.promcli.QueryRange(ctx, query, prometheusv1.Range{
		Start: from,
		End:   to,
		Step:  step,
	})
	if err != nil {
		return nil, fmt.Errorf("could not query prometheus: %w", err)
	}

	for _, warning := range warnings {
		r.logger.Warningf("Prometheus query warning: %v", warning)
	}

	matrix, ok := result.(prommodel.Matrix)
	if !ok {
		return nil, fmt.Errorf("unexpected result type: %T", result)
	}

	outagesByService := map[string][]model.Outage{}
	for _, stream := range matrix {
		service := string(stream.Metric[conventions.PromServiceLabelName])
		if service == "" {
			continue
		}
		planned, _ := strconv.ParseBool(string(stream.Metric[conventions.PromPlannedLabelName]))

		outagesByService[service] = append(outagesByService[service], samplesToOutages(stream.Values, step, planned)...)
	}

	res := make([]model.HistoryDatum, 0, len(outagesByService))
	for service, outages := range outagesByService {
		sort.SliceStable(outages, func(i, j int) bool { return outages[i].Start < outages[j].Start })
		res = append(res, model.HistoryDatum{Service: service, Outages: outages})
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Service < res[j].Service })

	return res, nil
}

// samplesToOutages converts a down series (non zero while down) into outages. An outage
// ends on the first up sample, or one step after the last down sample when the series
// has a gap.
func samplesToOutages(samples []prommodel.SamplePair, step time.Duration, planned bool) []model.Outage {
	outages := []model.Outage{}
	stepMs := step.Milliseconds()

	var (
		open  bool
		start int64
		last  int64
	)
	closeOutage := func(end int64) {
		outages = append(outages, model.Outage{Start: start, End: end, Planned: planned})
		open = false
	}

	for _, s := range samples {
		ts := int64(s.Timestamp)
		down := float64(s.Value) > 0

		if open && ts-last > stepMs {
			closeOutage(last + stepMs)
		}

		switch {
		case down && !open:
			open = true
			start = ts
		case !down && open:
			closeOutage(ts)
		}

		if down {
			last = ts
		}
	}

	// Ongoing outage.
	if open {
		closeOutage(last)
	}

	return outages
}

func serviceValues(v prommodel.Vector) map[string]float64 {
	res := map[string]float64{}
	for _, sample := range v {
		service := string(sample.Metric[conventions.PromServiceLabelName])
		if service == "" {
			continue
		}
		res[service] = float64(sample.Value)
	}
	return res
}

func meanUptime(cells []model.Cell) float64 {
	if len(cells) == 0 {
		return math.NaN()
	}

	total := 0.0
	for _, c := range cells {
		total += c.Uptime
	}
	return total / float64(len(cells))
}
