package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/parsekit/internal/config"
	"github.com/vk/parsekit/internal/ctxlog"
	"github.com/vk/parsekit/internal/fsutil"
	"github.com/vk/parsekit/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes all recognized top-level blocks from one manifest file.
type fileRoot struct {
	Parsers []*schema.ParserDefinition `hcl:"parser,block"`
	Remain  hcl.Body                   `hcl:",remain"`
}

// Load orchestrates manifest loading: discover .hcl files under the given
// paths, parse and decode each, and translate every parser block into the
// model. A path that does not exist is skipped, not an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{Parsers: make(map[string]*config.ParserDefinition)}

	files, err := l.findManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, block := range root.Parsers {
			def, err := l.translateParserDefinition(ctx, block)
			if err != nil {
				return nil, fmt.Errorf("in manifest %s: %w", file, err)
			}
			model.Parsers[def.Type] = def
		}
	}

	logger.Debug("HCL loading complete.", "parsers", len(model.Parsers))
	return model, nil
}

// findManifestFiles flattens the given paths into a deduplicated list of
// .hcl files.
func (l *Loader) findManifestFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(file string) {
		if _, dup := seen[file]; !dup {
			all = append(all, file)
			seen[file] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // a configured path that doesn't exist is not an error
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			add(file)
		}
	}

	return all, nil
}
