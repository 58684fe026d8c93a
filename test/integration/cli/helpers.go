package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/rcreports/uptimechart/test/integration/testutils"
)

type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "uptimechart"
	}

	_, err := exec.LookPath(c.Binary)
	if err != nil {
		return fmt.Errorf("uptimechart binary missing in %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig prepares the configuration for integration tests, if the configuration is not ready
// it will skip the test.
func NewConfig(t *testing.T) Config {
	const (
		envBin = "UPTIMECHART_INTEGRATION_BINARY"
	)

	c := Config{
		Binary: os.Getenv(envBin),
	}

	err := c.defaults()
	if err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

func RunRender(ctx context.Context, config Config, cmdArgs string) (stdout, stderr []byte, err error) {
	return testutils.RunUptimechart(ctx, nil, config.Binary, fmt.Sprintf("render %s", cmdArgs), true)
}

func RunValidate(ctx context.Context, config Config, cmdArgs string) (stdout, stderr []byte, err error) {
	return testutils.RunUptimechart(ctx, nil, config.Binary, fmt.Sprintf("validate %s", cmdArgs), true)
}
