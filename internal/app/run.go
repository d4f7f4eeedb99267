package app

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vk/parsekit/internal/ctxlog"
	"github.com/vk/parsekit/internal/engine"
	"github.com/vk/parsekit/internal/source"
	"github.com/vk/parsekit/internal/tree"
)

// Run executes one full parse of the configured input file and writes the
// sanitized result as JSON.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	reg, ok := a.registries[appConfig.ParserType]
	if !ok {
		return fmt.Errorf("unknown parser type '%s'", appConfig.ParserType)
	}

	// Strict parity is enforced only for the type being run; declared base
	// types may legitimately leave fields for subclasses to bind.
	if err := reg.Validate(ctx); err != nil {
		return err
	}
	a.logger.Debug("Registry validation passed.", "parser", appConfig.ParserType)

	metadata := source.FileMetadata(ctx, appConfig.InputPath)

	parser := engine.New(reg, source.File(appConfig.InputPath))
	for fieldName, value := range a.seeds[appConfig.ParserType] {
		parser.StoreFieldValue(fieldName, value)
	}

	a.logger.Info("Starting parse.", "parser", appConfig.ParserType, "input", appConfig.InputPath)
	if _, err := parser.Parse(ctx); err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	a.logger.Info("Parse finished.", "resolved", parser.Result().Len(), "failed", len(parser.Failures()))

	envelope := tree.NewMap()
	envelope.Set("parser", appConfig.ParserType)
	if metadata != nil {
		envelope.Set("file", metadata)
	}
	envelope.Set("fields", tree.Sanitize(parser.Result(), appConfig.SerializeTimestamps))
	if failures := parser.Failures(); len(failures) > 0 {
		msgs := make(tree.List, 0, len(failures))
		for _, f := range failures {
			msgs = append(msgs, f.Error())
		}
		envelope.Set("failures", msgs)
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := fmt.Fprintln(a.outW, string(data)); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
