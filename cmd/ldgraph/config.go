package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/ldgraph"
	"github.com/reoring/ldgraph/i18n"
)

// fileConfig is the --config file layout.
type fileConfig struct {
	Vocabulary     string `yaml:"vocabulary"`
	MaxDepth       int    `yaml:"maxDepth"`
	MaxBytes       int64  `yaml:"maxBytes"`
	OnDuplicateKey string `yaml:"onDuplicateKey"` // ignore, warn or error
	Language       string `yaml:"language"`       // en or ja
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) apply(opt ldgraph.Options) (ldgraph.Options, error) {
	opt.Vocabulary = c.Vocabulary
	opt.MaxDepth = c.MaxDepth
	opt.MaxBytes = c.MaxBytes
	switch c.OnDuplicateKey {
	case "", "ignore":
		opt.OnDuplicateKey = ldgraph.SeverityIgnore
	case "warn":
		opt.OnDuplicateKey = ldgraph.SeverityWarn
	case "error":
		opt.OnDuplicateKey = ldgraph.SeverityError
	default:
		return opt, fmt.Errorf("onDuplicateKey: unknown policy %q", c.OnDuplicateKey)
	}
	if c.Language != "" {
		i18n.SetLanguage(c.Language)
	}
	return opt, nil
}
