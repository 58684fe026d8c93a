package prometheus_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	prometheusv1 "github.com/prometheus/client_golang/api/prometheus/v1"
	prommodel "github.com/prometheus/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rcreports/uptimechart/internal/http/backend/storage/prometheus"
	"github.com/rcreports/uptimechart/internal/http/backend/storage/prometheus/prometheusmock"
	"github.com/rcreports/uptimechart/pkg/common/conventions"
	"github.com/rcreports/uptimechart/pkg/common/model"
)

var (
	testNow     = time.Date(2025, 11, 19, 12, 0, 0, 0, time.UTC)
	testQueries = prometheus.Queries{
		CellUptime:     `cell_uptime{{ .selector }}[{{ .window }}]`,
		NationalUptime: `national_uptime[{{ .window }}]`,
		Target:         `target`,
		Outages:        `outages{{ .selector }}`,
	}

	// Windows of the date ranges ending on testNow.
	testWindows = map[conventions.DateRange]string{
		conventions.DateRangeYear:        "1y",
		conventions.DateRangeSixMonths:   "184d",
		conventions.DateRangeThreeMonths: "92d",
		conventions.DateRangeOneMonth:    "31d",
	}
)

func ts(t time.Time) prommodel.Time { return prommodel.TimeFromUnixNano(t.UnixNano()) }

func sample(v float64, labels ...string) *prommodel.Sample {
	m := prommodel.Metric{}
	for i := 0; i < len(labels); i += 2 {
		m[prommodel.LabelName(labels[i])] = prommodel.LabelValue(labels[i+1])
	}
	return &prommodel.Sample{Metric: m, Value: prommodel.SampleValue(v)}
}

// mockEmptyRanges mocks all the date range instant queries except the year ones with empty results.
func mockEmptyRanges(mpc *prometheusmock.PrometheusAPIClient, selector string) {
	for dr, w := range testWindows {
		if dr == conventions.DateRangeYear {
			continue
		}
		mpc.On("Query", mock.Anything, fmt.Sprintf("cell_uptime%s[%s]", selector, w), testNow).Once().Return(prommodel.Vector{}, nil, nil)
		mpc.On("Query", mock.Anything, fmt.Sprintf("national_uptime[%s]", w), testNow).Once().Return(prommodel.Vector{}, nil, nil)
		mpc.On("Query", mock.Anything, "target", testNow).Once().Return(prommodel.Vector{}, nil, nil)
	}
}

func TestRepositoryListUptimeSummaries(t *testing.T) {
	tests := map[string]struct {
		selector   map[string]string
		dateRange  conventions.DateRange
		mock       func(mpc *prometheusmock.PrometheusAPIClient)
		expData    []model.BulletDatum
		expLoadErr bool
		expErr     bool
	}{
		"Getting uptimes successfully should return the summaries sorted.": {
			selector:  map[string]string{"region": "melbourne"},
			dateRange: conventions.DateRangeYear,
			mock: func(mpc *prometheusmock.PrometheusAPIClient) {
				mpc.On("Query", mock.Anything, `cell_uptime{region="melbourne"}[1y]`, testNow).Once().Return(prommodel.Vector{
					sample(99.5, "service", "Swift", "cell", "NP"),
					sample(98.5, "service", "Nova", "cell", "QH2"),
					sample(99.1, "service", "Nova", "cell", "NP"),
					sample(10, "service", "Nova"), // Ignored.
				}, nil, nil)
				mpc.On("Query", mock.Anything, `national_uptime[1y]`, testNow).Once().Return(prommodel.Vector{
					sample(98.8, "service", "Nova"),
				}, nil, nil)
				mpc.On("Query", mock.Anything, `target`, testNow).Once().Return(prommodel.Vector{
					sample(99, "service", "Nova"),
					sample(99.9, "service", "Swift"),
				}, prometheusv1.Warnings{"something"}, nil)
				mockEmptyRanges(mpc, `{region="melbourne"}`)
				mpc.On("QueryRange", mock.Anything, `outages{region="melbourne"}`, mock.Anything).Once().Return(prommodel.Matrix{}, nil, nil)
			},
			expData: []model.BulletDatum{
				{Service: "Nova", National: 98.8, Target: 99, Cells: []model.Cell{{Name: "NP", Uptime: 99.1}, {Name: "QH2", Uptime: 98.5}}},
				// Missing national uses the cells mean.
				{Service: "Swift", National: 99.5, Target: 99.9, Cells: []model.Cell{{Name: "NP", Uptime: 99.5}}},
			},
		},

		"Getting other ranges should return their summaries.": {
			dateRange: conventions.DateRangeOneMonth,
			mock: func(mpc *prometheusmock.PrometheusAPIClient) {
				mpc.On("Query", mock.Anything, `cell_uptime[1y]`, testNow).Once().Return(prommodel.Vector{}, nil, nil)
				mpc.On("Query", mock.Anything, `national_uptime[1y]`, testNow).Once().Return(prommodel.Vector{}, nil, nil)
				mpc.On("Query", mock.Anything, `target`, testNow).Once().Return(prommodel.Vector{}, nil, nil)
				mockEmptyRanges(mpc, "")
				mpc.On("QueryRange", mock.Anything, `outages`, mock.Anything).Once().Return(prommodel.Matrix{}, nil, nil)
			},
			expData: []model.BulletDatum{},
		},

		"An unknown date range should fail.": {
			dateRange: "decade",
			mock: func(mpc *prometheusmock.PrometheusAPIClient) {
				mpc.On("Query", mock.Anything, mock.Anything, testNow).Return(prommodel.Vector{}, nil, nil)
				mpc.On("QueryRange", mock.Anything, mock.Anything, mock.Anything).Once().Return(prommodel.Matrix{}, nil, nil)
			},
			expErr: true,
		},

		"Failing a query should fail the cache warm up.": {
			dateRange: conventions.DateRangeYear,
			mock: func(mpc *prometheusmock.PrometheusAPIClient) {
				mpc.On("Query", mock.Anything, `cell_uptime[1y]`, testNow).Once().Return(nil, nil, fmt.Errorf("something"))
			},
			expLoadErr: true,
		},

		"An unexpected result type should fail the cache warm up.": {
			dateRange: conventions.DateRangeYear,
			mock: func(mpc *prometheusmock.PrometheusAPIClient) {
				mpc.On("Query", mock.Anything, `cell_uptime[1y]`, testNow).Once().Return(prommodel.Matrix{}, nil, nil)
			},
			expLoadErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mpc := prometheusmock.NewPrometheusAPIClient(t)
			test.mock(mpc)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			repo, err := prometheus.NewRepository(ctx, prometheus.RepositoryConfig{
				PrometheusClient:     mpc,
				Queries:              testQueries,
				Selector:             test.selector,
				CacheRefreshInterval: time.Hour,
				TimeNowFunc:          func() time.Time { return testNow },
			})
			if test.expLoadErr {
				assert.Error(err)
				return
			}
			require.NoError(err)

			got, err := repo.ListUptimeSummaries(ctx, test.dateRange)
			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expData, got)
			}
		})
	}
}

func TestRepositoryMissingTargetIsNaN(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	mpc := prometheusmock.NewPrometheusAPIClient(t)
	mpc.On("Query", mock.Anything, `cell_uptime[1y]`, testNow).Once().Return(prommodel.Vector{
		sample(99.5, "service", "Swift", "cell", "NP"),
	}, nil, nil)
	mpc.On("Query", mock.Anything, `national_uptime[1y]`, testNow).Once().Return(prommodel.Vector{}, nil, nil)
	mpc.On("Query", mock.Anything, `target`, testNow).Once().Return(prommodel.Vector{}, nil, nil)
	mockEmptyRanges(mpc, "")
	mpc.On("QueryRange", mock.Anything, `outages`, mock.Anything).Once().Return(prommodel.Matrix{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := prometheus.NewRepository(ctx, prometheus.RepositoryConfig{
		PrometheusClient: mpc,
		Queries:          testQueries,
		TimeNowFunc:      func() time.Time { return testNow },
	})
	require.NoError(err)

	got, err := repo.ListUptimeSummaries(ctx, conventions.DateRangeYear)
	require.NoError(err)
	require.Len(got, 1)
	assert.True(math.IsNaN(got[0].Target))
	assert.Equal(99.5, got[0].National)
}

func TestRepositoryListOutageHistory(t *testing.T) {
	t0 := testNow.Add(-100 * 24 * time.Hour)
	t1 := testNow.Add(-50 * 24 * time.Hour)
	ms := func(t time.Time) int64 { return t.UnixMilli() }

	tests := map[string]struct {
		from, to   time.Time
		expHistory []model.HistoryDatum
	}{
		"Getting the full year should return all the outages.": {
			from: testNow.AddDate(-1, 0, 0),
			to:   testNow,
			expHistory: []model.HistoryDatum{
				{Service: "Nova", Outages: []model.Outage{
					{Start: ms(t0), End: ms(t0.Add(2 * time.Hour)), Planned: true},
					{Start: ms(t1), End: ms(t1.Add(2 * time.Hour))},
					{Start: ms(t1.Add(5 * time.Hour)), End: ms(t1.Add(5 * time.Hour))},
				}},
				{Service: "Swift", Outages: []model.Outage{}},
			},
		},

		"Getting a window should return only the overlapping outages.": {
			from: t1.Add(time.Hour),
			to:   testNow,
			expHistory: []model.HistoryDatum{
				{Service: "Nova", Outages: []model.Outage{
					{Start: ms(t1), End: ms(t1.Add(2 * time.Hour))},
					{Start: ms(t1.Add(5 * time.Hour)), End: ms(t1.Add(5 * time.Hour))},
				}},
				{Service: "Swift", Outages: []model.Outage{}},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mpc := prometheusmock.NewPrometheusAPIClient(t)
			mpc.On("Query", mock.Anything, mock.Anything, testNow).Return(prommodel.Vector{}, nil, nil)
			expRange := prometheusv1.Range{Start: testNow.AddDate(-1, 0, 0), End: testNow, Step: time.Hour}
			mpc.On("QueryRange", mock.Anything, `outages`, expRange).Once().Return(prommodel.Matrix{
				{
					Metric: prommodel.Metric{"service": "Swift", "planned": "false"},
					Values: []prommodel.SamplePair{{Timestamp: ts(t0), Value: 0}, {Timestamp: ts(t0.Add(time.Hour)), Value: 0}},
				},
				{
					Metric: prommodel.Metric{"service": "Nova", "planned": "false"},
					Values: []prommodel.SamplePair{
						{Timestamp: ts(t1), Value: 1},
						{Timestamp: ts(t1.Add(time.Hour)), Value: 1},
						// Gap.
						{Timestamp: ts(t1.Add(5 * time.Hour)), Value: 1},
					},
				},
				{
					Metric: prommodel.Metric{"service": "Nova", "planned": "true"},
					Values: []prommodel.SamplePair{
						{Timestamp: ts(t0), Value: 1},
						{Timestamp: ts(t0.Add(time.Hour)), Value: 1},
						{Timestamp: ts(t0.Add(2 * time.Hour)), Value: 0},
					},
				},
			}, nil, nil)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			repo, err := prometheus.NewRepository(ctx, prometheus.RepositoryConfig{
				PrometheusClient:  mpc,
				Queries:           testQueries,
				HistoryResolution: 8760, // 1h step.
				TimeNowFunc:       func() time.Time { return testNow },
			})
			require.NoError(err)

			got, err := repo.ListOutageHistory(ctx, test.from, test.to)
			if assert.NoError(err) {
				assert.Equal(test.expHistory, got)
			}
		})
	}
}

func TestNewRepositoryInvalidConfig(t *testing.T) {
	tests := map[string]struct {
		config prometheus.RepositoryConfig
	}{
		"Missing client should fail.": {
			config: prometheus.RepositoryConfig{Queries: testQueries},
		},

		"Missing queries should fail.": {
			config: prometheus.RepositoryConfig{PrometheusClient: &prometheusmock.PrometheusAPIClient{}},
		},

		"Invalid query templates should fail.": {
			config: prometheus.RepositoryConfig{
				PrometheusClient: &prometheusmock.PrometheusAPIClient{},
				Queries: prometheus.Queries{
					CellUptime:     "{{ .window }",
					NationalUptime: "a",
					Target:         "b",
					Outages:        "c",
				},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := prometheus.NewRepository(context.Background(), test.config)
			assert.Error(t, err)
		})
	}
}
