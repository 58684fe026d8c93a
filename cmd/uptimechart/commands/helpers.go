package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rcreports/uptimechart/internal/config"
	"github.com/rcreports/uptimechart/internal/log"
	"github.com/rcreports/uptimechart/internal/plugin"
	storagefs "github.com/rcreports/uptimechart/internal/storage/fs"
)

var reportFileExtensions = map[string]struct{}{
	".yml":  {},
	".yaml": {},
	".json": {},
}

func discoverReportFiles(logger log.Logger, exclude, include *regexp.Regexp, path string) ([]string, error) {
	logger = logger.WithValues(log.Kv{"svc": "ReportDiscovery"})

	paths := []string{}
	err := filepath.Walk(path, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		// Only report data files need to be handled.
		extension := strings.ToLower(filepath.Ext(path))
		if _, ok := reportFileExtensions[extension]; !ok {
			return nil
		}

		// Filter by exclude or include (exclude has preference).
		if exclude != nil && exclude.MatchString(path) {
			logger.Debugf("Excluding path due to exclude filter %s", path)
			return nil
		}
		if include != nil && !include.MatchString(path) {
			logger.Debugf("Excluding path due to include filter %s", path)
			return nil
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not find files recursively: %w", err)
	}

	return paths, nil
}

func compileOptionalRegex(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}

	return regexp.Compile(expr)
}

// newColorPluginRepo returns the color plugin repository with the embedded plugins and the ones
// on the plugin paths.
func newColorPluginRepo(logger log.Logger, strict bool, paths []string) (*storagefs.FilePluginRepo, error) {
	fss := []fs.FS{plugin.EmbeddedDefaultColorPlugins}
	for _, p := range paths {
		fss = append(fss, os.DirFS(p))
	}

	return storagefs.NewFilePluginRepo(logger, strict, nil, fss...)
}

// loadConfig loads the configuration file and checks the color plugin it needs is available.
func loadConfig(ctx context.Context, path string, plugins *storagefs.FilePluginRepo) (*config.Config, error) {
	cfg, err := config.YAMLLoader.LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}

	if cfg.Colors.Mode == config.ColorModePlugin {
		_, err := plugins.GetColorPlugin(ctx, cfg.Colors.PluginID)
		if err != nil {
			return nil, fmt.Errorf("could not get color plugin: %w", err)
		}
	}

	return cfg, nil
}
