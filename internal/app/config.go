package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // artifact file to parse
	ParserType string // which declared parser type to run
	// ManifestPath points at a single .hcl manifest or a directory tree of
	// them.
	ManifestPath string

	LogFormat           string
	LogLevel            string
	SerializeTimestamps bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.ParserType == "" {
		return nil, errors.New("ParserType is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
