package cli_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcreports/uptimechart/test/integration/cli"
)

func TestRender(t *testing.T) {
	// Tests config.
	config := cli.NewConfig(t)

	// Tests.
	tests := map[string]struct {
		cmdArgs  string
		expOut   []string
		expNoOut []string
		expErr   bool
	}{
		"Rendering the bullet chart should render every service and cell.": {
			cmdArgs: "--chart bullet --input ./testdata/render/report.yaml --width 1000",
			expOut: []string{
				`<svg`,
				`Uptime: Nova`,
				`Uptime: Swift`,
				`fill="chocolate"`,
				`fill="blue"`,
			},
		},

		"Rendering the bullet chart with the palette configuration should use the palette colors.": {
			cmdArgs: "--chart bullet --input ./testdata/render/report.yaml --config ./testdata/render/config.yaml",
			expOut: []string{
				`Nova`,
				`fill="#ff0000"`,
				`fill="#00ff00"`,
			},
			expNoOut: []string{
				`fill="chocolate"`,
			},
		},

		"Rendering the history chart should render the outages of the year.": {
			cmdArgs: "--chart history --input ./testdata/render/report.yaml --now 2024-06-01T00:00:00Z",
			expOut: []string{
				`<svg`,
				`from 2023-06-01 to 2024-06-01`,
				`uptm_planned`,
				`uptm_unplanned`,
			},
		},

		"Rendering an empty report should render the no data placeholder.": {
			cmdArgs: "--chart history --input ./testdata/render/empty.yaml",
			expOut:  []string{`No Data Available.`},
		},

		"Rendering a missing report should fail.": {
			cmdArgs: "--chart bullet --input ./testdata/render/missing.yaml",
			expErr:  true,
		},

		"Rendering an unknown date range should fail.": {
			cmdArgs: "--chart bullet --input ./testdata/render/report.yaml --date-range decade",
			expErr:  true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			// Run with context to stop on test end.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			out, _, err := cli.RunRender(ctx, config, test.cmdArgs)

			if test.expErr {
				assert.Error(err)
				return
			}

			if assert.NoError(err) {
				for _, exp := range test.expOut {
					assert.Contains(string(out), exp)
				}
				for _, exp := range test.expNoOut {
					assert.NotContains(string(out), exp)
				}
			}
		})
	}
}
