package fs

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"sync"

	"github.com/rcreports/uptimechart/internal/log"
	pluginenginecolor "github.com/rcreports/uptimechart/internal/pluginengine/color"
	commonerrors "github.com/rcreports/uptimechart/pkg/common/errors"
)

type ColorPluginLoader interface {
	LoadRawPlugin(ctx context.Context, src string) (*pluginenginecolor.Plugin, error)
}

//go:generate mockery --case underscore --output fsmock --outpkg fsmock --name ColorPluginLoader

// FilePluginRepo loads color plugins from file systems and keeps them cached.
type FilePluginRepo struct {
	fss         []fs.FS
	failOnError bool
	loader      ColorPluginLoader
	cache       map[string]pluginenginecolor.Plugin
	logger      log.Logger
	mu          sync.RWMutex
}

// NewFilePluginRepo returns a new FilePluginRepo that loads color plugins from the given file systems.
// In strict mode a plugin that can't be loaded fails the load, otherwise it's logged and ignored.
func NewFilePluginRepo(logger log.Logger, failOnError bool, loader ColorPluginLoader, fss ...fs.FS) (*FilePluginRepo, error) {
	if loader == nil {
		loader = pluginenginecolor.PluginLoader
	}

	r := &FilePluginRepo{
		fss:         fss,
		failOnError: failOnError,
		loader:      loader,
		cache:       map[string]pluginenginecolor.Plugin{},
		logger:      logger.WithValues(log.Kv{"svc": "storagefs.FilePluginRepo"}),
	}

	err := r.Reload(context.Background())
	if err != nil {
		return nil, fmt.Errorf("could not load plugins: %w", err)
	}

	return r, nil
}

var pluginNameRegex = regexp.MustCompile("plugin.go$")

// Reload reloads all the plugins from the file systems.
func (r *FilePluginRepo) Reload(ctx context.Context) error {
	plugins, err := r.loadPlugins(ctx, r.fss...)
	if err != nil {
		return fmt.Errorf("could not load plugins: %w", err)
	}

	r.mu.Lock()
	r.cache = plugins
	r.mu.Unlock()

	r.logger.WithValues(log.Kv{"color-plugins": len(plugins)}).Infof("Plugins loaded")
	return nil
}

// GetColorPlugin returns a loaded plugin by ID.
func (r *FilePluginRepo) GetColorPlugin(ctx context.Context, id string) (*pluginenginecolor.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.cache[id]
	if !ok {
		return nil, fmt.Errorf("plugin %q not found: %w", id, commonerrors.ErrNotFound)
	}

	return &p, nil
}

// ListColorPluginIDs returns the sorted IDs of the loaded plugins.
func (r *FilePluginRepo) ListColorPluginIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.cache))
	for id := range r.cache {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

func (r *FilePluginRepo) loadPlugins(ctx context.Context, fss ...fs.FS) (map[string]pluginenginecolor.Plugin, error) {
	plugins := map[string]pluginenginecolor.Plugin{}

	for _, f := range fss {
		err := fs.WalkDir(f, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				// Hidden directories are ignored.
				if path != "." && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return fs.SkipDir
				}
				return nil
			}

			if !pluginNameRegex.MatchString(path) {
				return nil
			}

			pluginDataBytes, err := fs.ReadFile(f, path)
			if err != nil {
				return fmt.Errorf("could not read %q plugin data: %w", path, err)
			}

			plugin, err := r.loader.LoadRawPlugin(ctx, string(pluginDataBytes))
			if err != nil {
				if r.failOnError {
					return fmt.Errorf("could not load %q color plugin: %w", path, err)
				}
				r.logger.Errorf("could not load %q as color plugin: %s", path, err)
				return nil
			}

			_, ok := plugins[plugin.ID]
			if ok {
				return fmt.Errorf("plugin %q already loaded", plugin.ID)
			}
			plugins[plugin.ID] = *plugin
			r.logger.WithValues(log.Kv{"color-plugin-id": plugin.ID}).Debugf("Color plugin discovered and loaded")

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not walk dir: %w", err)
		}
	}

	return plugins, nil
}
