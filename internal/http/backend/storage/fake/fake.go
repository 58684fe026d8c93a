package fake

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rcreports/uptimechart/internal/http/backend/storage"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
	"github.com/rcreports/uptimechart/pkg/common/model"
	utilstime "github.com/rcreports/uptimechart/pkg/common/utils/time"
)

const (
	fakeSeed    = 1337
	fakeHistory = 2 * 365 * 24 * time.Hour
)

type fakeCell struct {
	name    string
	outages []model.Outage
}

type fakeService struct {
	name   string
	target float64
	cells  []fakeCell
}

// FakeRepository generates deterministic uptime data for demos and development.
// Uptimes are derived from the generated outages, so both charts agree.
type FakeRepository struct {
	services    []fakeService
	timeNowFunc func() time.Time
}

var (
	_ storage.UptimeGetter  = &FakeRepository{}
	_ storage.HistoryGetter = &FakeRepository{}
)

// NewFakeRepository returns a new fake repository, data is generated for
// the two years before the current time.
func NewFakeRepository(timeNowFunc func() time.Time) *FakeRepository {
	if timeNowFunc == nil {
		timeNowFunc = time.Now
	}

	r := FakeRepository{timeNowFunc: timeNowFunc}
	r.genFakeData(timeNowFunc())

	return &r
}

func (f *FakeRepository) genFakeData(now time.Time) {
	rnd := rand.New(rand.NewSource(fakeSeed))
	now = utilstime.RoundTimeToDay(now.UTC())

	services := []struct {
		name   string
		target float64
	}{
		{"Nova", 99.5},
		{"Swift", 99.9},
		{"Cinder", 99},
		{"Glance", 99.5},
		{"Keystone", 99.9},
		{"Neutron", 99},
	}
	cells := []string{"NP", "QH2", "QH2-UoM"}

	for _, s := range services {
		svc := fakeService{name: s.name, target: s.target}
		for _, c := range cells {
			cell := fakeCell{name: c}

			n := rnd.Intn(8) + 2
			for i := 0; i < n; i++ {
				planned := rnd.Intn(3) == 0
				start := now.Add(-time.Duration(rnd.Int63n(int64(fakeHistory))))
				var d time.Duration
				if planned {
					d = 30*time.Minute + time.Duration(rnd.Int63n(int64(8*time.Hour)))
				} else {
					d = time.Minute + time.Duration(rnd.Int63n(int64(36*time.Hour)))
				}

				cell.outages = append(cell.outages, model.Outage{
					Start:   start.UnixMilli(),
					End:     start.Add(d).UnixMilli(),
					Planned: planned,
				})
			}

			sort.SliceStable(cell.outages, func(i, j int) bool { return cell.outages[i].Start < cell.outages[j].Start })
			svc.cells = append(svc.cells, cell)
		}
		f.services = append(f.services, svc)
	}
}

func (f *FakeRepository) ListUptimeSummaries(ctx context.Context, dateRange conventions.DateRange) ([]model.BulletDatum, error) {
	to := f.timeNowFunc()
	from, err := utilstime.DateRangeStart(to, dateRange)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", commonerrors.ErrInvalidRange, err)
	}

	res := make([]model.BulletDatum, 0, len(f.services))
	for _, s := range f.services {
		d := model.BulletDatum{Service: s.name, Target: s.target}
		total := 0.0
		for _, c := range s.cells {
			u := uptimePercent(c.outages, from, to)
			d.Cells = append(d.Cells, model.Cell{Name: c.name, Uptime: u})
			total += u
		}
		d.National = round2(total / float64(len(s.cells)))
		res = append(res, d)
	}

	return res, nil
}

func (f *FakeRepository) ListOutageHistory(ctx context.Context, from, to time.Time) ([]model.HistoryDatum, error) {
	res := make([]model.HistoryDatum, 0, len(f.services))
	for _, s := range f.services {
		d := model.HistoryDatum{Service: s.name, Outages: []model.Outage{}}
		for _, c := range s.cells {
			for _, o := range c.outages {
				if o.Overlaps(from, to) {
					d.Outages = append(d.Outages, o)
				}
			}
		}
		sort.SliceStable(d.Outages, func(i, j int) bool { return d.Outages[i].Start < d.Outages[j].Start })
		res = append(res, d)
	}

	return res, nil
}

// uptimePercent returns the percent of the window not covered by the outages,
// overlapping outages are counted once.
func uptimePercent(outages []model.Outage, from, to time.Time) float64 {
	window := float64(to.UnixMilli() - from.UnixMilli())
	if window <= 0 {
		return 100
	}

	// Outages are sorted by start.
	down := 0.0
	cursor := float64(from.UnixMilli())
	for _, o := range outages {
		start := math.Max(float64(o.Start), cursor)
		end := math.Min(float64(o.End), float64(to.UnixMilli()))
		if end > start {
			down += end - start
			cursor = end
		}
	}

	return round2(100 * (1 - down/window))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
