package color

import (
	"context"
	"fmt"
	"regexp"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/rcreports/uptimechart/internal/chart/color"
	pluginv1 "github.com/rcreports/uptimechart/pkg/plugin/color/v1"
)

// Plugin is a loaded color plugin.
type Plugin struct {
	ID   string
	Func pluginv1.ColorFor
}

// ColorFunc returns a chart color function backed by the plugin. Plugin errors
// and non CSS colors fall back to the default color so a broken plugin never
// breaks a render.
func (p Plugin) ColorFunc(ctx context.Context, meta, options map[string]string) color.Func {
	return func(name string) string {
		c, err := p.Func(ctx, name, meta, options)
		if err != nil || !color.IsCSS(c) {
			return color.DefaultColor
		}
		return c
	}
}

// PluginLoader knows how to load Go color plugins using Yaegi.
const PluginLoader = pluginLoader(false)

type pluginLoader bool

var packageRegexp = regexp.MustCompile(`(?m)^package +([^\s]+) *$`)

// LoadRawPlugin knows how to load plugins using Yaegi from source data not files,
// thats why, this implementation will not support any import library except standard
// library.
//
// The load process will search for:
// - A function called `ColorFor` to obtain the plugin func.
// - A constant called `PluginID` to obtain the plugin ID.
// - A constant called `PluginVersion` to obtain the plugin version.
func (p pluginLoader) LoadRawPlugin(ctx context.Context, src string) (*Plugin, error) {
	// For each plugin we need to use an independent interpreter to avoid name collisions.
	yaegiInterp, err := p.newYaeginInterpreter()
	if err != nil {
		return nil, fmt.Errorf("could not create a new Yaegi interpreter: %w", err)
	}

	_, err = yaegiInterp.EvalWithContext(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("could not evaluate plugin source code: %w", err)
	}

	packageMatch := packageRegexp.FindStringSubmatch(src)
	if len(packageMatch) != 2 {
		return nil, fmt.Errorf("invalid plugin source code, could not get package name")
	}
	packageName := packageMatch[1]

	pluginVerTmp, err := yaegiInterp.EvalWithContext(ctx, fmt.Sprintf("%s.%s", packageName, pluginv1.PluginVersionName))
	if err != nil {
		return nil, fmt.Errorf("could not get plugin version: %w", err)
	}

	pluginVer, ok := pluginVerTmp.Interface().(pluginv1.PluginVersion)
	if !ok || (pluginVer != pluginv1.Version) {
		return nil, fmt.Errorf("unsuported plugin version: %s", pluginVer)
	}

	pluginIDTmp, err := yaegiInterp.EvalWithContext(ctx, fmt.Sprintf("%s.%s", packageName, pluginv1.PluginIDName))
	if err != nil {
		return nil, fmt.Errorf("could not get plugin ID: %w", err)
	}

	pluginID, ok := pluginIDTmp.Interface().(pluginv1.PluginID)
	if !ok || pluginID == "" {
		return nil, fmt.Errorf("invalid color plugin ID type")
	}

	pluginFuncTmp, err := yaegiInterp.EvalWithContext(ctx, fmt.Sprintf("%s.%s", packageName, pluginv1.PluginFuncName))
	if err != nil {
		return nil, fmt.Errorf("could not get plugin: %w", err)
	}

	pluginFunc, ok := pluginFuncTmp.Interface().(pluginv1.ColorFor)
	if !ok {
		return nil, fmt.Errorf("invalid color plugin type")
	}

	return &Plugin{
		ID:   pluginID,
		Func: pluginFunc,
	}, nil
}

func (p pluginLoader) newYaeginInterpreter() (*interp.Interpreter, error) {
	i := interp.New(interp.Options{})
	err := i.Use(stdlib.Symbols)
	if err != nil {
		return nil, fmt.Errorf("could not use stdlib symbols: %w", err)
	}

	return i, nil
}
