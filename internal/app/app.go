package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/parsekit/internal/config"
	"github.com/vk/parsekit/internal/ctxlog"
	"github.com/vk/parsekit/internal/field"
	"github.com/vk/parsekit/internal/handlers"
	"github.com/vk/parsekit/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	model      *config.Model
	handlers   *handlers.Handlers
	registries map[string]*registry.Registry
	// seeds holds, per parser type, the manifest defaults pre-written into
	// backing slots before a run.
	seeds map[string]map[string]any
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registries.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, mods ...handlers.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ManifestPath)
	if err != nil {
		// A failure to load manifests is a fatal startup error.
		panic(fmt.Errorf("failed to load parser manifests: %w", err))
	}
	logger.Debug("Manifests loaded and translated into unified model.", "parsers", len(model.Parsers))

	hs := handlers.New()
	if len(mods) == 0 {
		mods = coreModules
	}
	for _, mod := range mods {
		mod.Register(hs)
	}
	logger.Debug("All parser modules registered.", "count", len(mods))

	registries, seeds, err := buildRegistries(ctx, model, hs)
	if err != nil {
		// A mismatch between manifests and code is a programmer error.
		panic(err)
	}
	logger.Debug("Field registries built.", "count", len(registries))

	return &App{
		outW:       outW,
		logger:     logger,
		model:      model,
		handlers:   hs,
		registries: registries,
		seeds:      seeds,
	}
}

// Registry returns the built registry for a parser type. This is primarily
// for testing.
func (a *App) Registry(parserType string) (*registry.Registry, bool) {
	reg, ok := a.registries[parserType]
	return reg, ok
}

// buildRegistries constructs one registry per declared parser type, walking
// the extends chains so that base registries exist before their subclasses.
// Handler binding happens per declared field; inherited fields keep the
// binding made by the base unless the subclass re-declares them.
func buildRegistries(ctx context.Context, model *config.Model, hs *handlers.Handlers) (map[string]*registry.Registry, map[string]map[string]any, error) {
	logger := ctxlog.FromContext(ctx)
	registries := make(map[string]*registry.Registry, len(model.Parsers))
	seeds := make(map[string]map[string]any, len(model.Parsers))
	visiting := make(map[string]bool)

	var build func(name string) (*registry.Registry, error)
	build = func(name string) (*registry.Registry, error) {
		if reg, done := registries[name]; done {
			return reg, nil
		}
		def, ok := model.Parsers[name]
		if !ok {
			return nil, fmt.Errorf("parser type '%s' is extended but never declared", name)
		}
		if visiting[name] {
			return nil, fmt.Errorf("inheritance cycle involving parser type '%s'", name)
		}
		visiting[name] = true
		defer delete(visiting, name)

		var bases []*registry.Registry
		for _, baseName := range def.Extends {
			base, err := build(baseName)
			if err != nil {
				return nil, err
			}
			bases = append(bases, base)
		}

		declared := make([]*field.Descriptor, 0, len(def.Fields))
		for _, f := range def.Fields {
			var opts []field.Option
			if len(f.DependsOn) > 0 {
				opts = append(opts, field.WithDependencies(f.DependsOn...))
			}
			if f.ReadOnly {
				opts = append(opts, field.ReadOnly())
			}
			declared = append(declared, field.New(f.Index, f.Name, opts...))
		}

		reg, err := registry.Build(name, bases, declared)
		if err != nil {
			return nil, err
		}

		for _, f := range def.Fields {
			if fn, found := hs.Lookup(f.HandlerName()); found {
				reg.BindHandler(f.Name, fn)
			}
		}

		seed := make(map[string]any)
		for _, baseName := range def.Extends {
			for fieldName, value := range seeds[baseName] {
				seed[fieldName] = value
			}
		}
		for _, f := range def.Fields {
			if f.Default == nil {
				continue
			}
			native, err := config.NativeValue(*f.Default)
			if err != nil {
				return nil, fmt.Errorf("parser '%s', field '%s': %w", name, f.Name, err)
			}
			seed[f.Name] = native
		}

		logger.Debug("Registry built.", "parser", name, "fields", reg.Len())
		registries[name] = reg
		seeds[name] = seed
		return reg, nil
	}

	for name := range model.Parsers {
		if _, err := build(name); err != nil {
			return nil, nil, err
		}
	}

	return registries, seeds, nil
}
