// Package config holds the settings of a demo run: dataset shape, split,
// baseline classifiers, output and logging.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cmreport/internal/classify"
	"cmreport/internal/dataset"
	"cmreport/internal/logging"
	"cmreport/internal/report"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// SplitConfig controls the train/test split.
type SplitConfig struct {
	TestSize float64 `yaml:"test_size"`
	Seed     uint64  `yaml:"seed"`
}

// ClassifierConfig declares one baseline classifier.
type ClassifierConfig struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`
	Seed     uint64 `yaml:"seed"`
}

// OutputConfig controls where and how the report is written.
type OutputConfig struct {
	Path      string  `yaml:"path"`
	Format    string  `yaml:"format"`
	PanelSize float64 `yaml:"panel_size"` // inches
}

// LogConfig controls slog setup.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is a full demo run.
type Config struct {
	Dataset     dataset.SyntheticConfig `yaml:"dataset"`
	Split       SplitConfig             `yaml:"split"`
	Classifiers []ClassifierConfig      `yaml:"classifiers"`
	Parallel    int                     `yaml:"parallel"`
	Output      OutputConfig            `yaml:"output"`
	Log         LogConfig               `yaml:"log"`
}

// Default mirrors the classic example: 200×144 dataset over 3 classes, seed 41,
// a 33% test split with seed 4141, and one baseline per strategy.
func Default() *Config {
	var classifiers []ClassifierConfig
	for _, s := range classify.Strategies() {
		classifiers = append(classifiers, ClassifierConfig{Name: s, Strategy: s, Seed: 41})
	}
	return &Config{
		Dataset:     dataset.DefaultSynthetic(),
		Split:       SplitConfig{TestSize: 0.33, Seed: 4141},
		Classifiers: classifiers,
		Parallel:    len(classifiers),
		Output:      OutputConfig{Path: "", Format: "png", PanelSize: 6},
		Log:         LogConfig{Level: "info", Format: "text"},
	}
}

// LoadFromPath decodes a YAML file over Default(). Keys absent from the
// file keep their default values; a classifiers list replaces the default one.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data)
}

// Load decodes YAML bytes over Default().
func Load(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks every field a run depends on.
func (c *Config) Validate() error {
	var errs []error
	if c.Dataset.Samples < 1 || c.Dataset.Features < 1 || c.Dataset.Classes < 1 {
		errs = append(errs, fmt.Errorf("dataset sizes must be >= 1 (samples=%d features=%d classes=%d)",
			c.Dataset.Samples, c.Dataset.Features, c.Dataset.Classes))
	}
	if !(c.Split.TestSize > 0 && c.Split.TestSize < 1) {
		errs = append(errs, fmt.Errorf("split.test_size must be in (0, 1), got %v", c.Split.TestSize))
	}
	if len(c.Classifiers) == 0 {
		errs = append(errs, errors.New("at least one classifier is required"))
	}
	seen := make(map[string]bool)
	for i, cc := range c.Classifiers {
		if cc.Name == "" {
			errs = append(errs, fmt.Errorf("classifiers[%d]: name is required", i))
		} else if seen[cc.Name] {
			errs = append(errs, fmt.Errorf("classifiers[%d]: duplicate name %q", i, cc.Name))
		}
		seen[cc.Name] = true
		if _, err := classify.NewDummy(cc.Strategy, 1, 0); err != nil {
			errs = append(errs, fmt.Errorf("classifiers[%d]: %w", i, err))
		}
	}
	if c.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel must be >= 1, got %d", c.Parallel))
	}
	if _, err := report.BackendFor(c.Output.Format, report.Options{}); err != nil {
		errs = append(errs, err)
	}
	if c.Output.PanelSize <= 0 {
		errs = append(errs, fmt.Errorf("output.panel_size must be > 0, got %v", c.Output.PanelSize))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// NamedClassifiers builds the configured baselines for the dataset's classes.
func (c *Config) NamedClassifiers() ([]classify.Named, error) {
	out := make([]classify.Named, 0, len(c.Classifiers))
	for _, cc := range c.Classifiers {
		nc, err := classify.New(cc.Name, cc.Strategy, c.Dataset.Classes, cc.Seed)
		if err != nil {
			return nil, fmt.Errorf("classifier %q: %w", cc.Name, err)
		}
		out = append(out, nc)
	}
	return out, nil
}
