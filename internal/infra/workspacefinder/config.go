package workspacefinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

// LoadConfig loads bhloop.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "bhloop.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Bhloop.Paths.OutputDir != "" {
		cfg.Paths.OutputDir = y.Bhloop.Paths.OutputDir
	}
	if y.Bhloop.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Bhloop.Paths.RunsDir
	}
	if y.Bhloop.Export.Format != "" {
		cfg.Export.Format = y.Bhloop.Export.Format
	}
	if y.Bhloop.Export.Plot != nil {
		cfg.Export.Plot = *y.Bhloop.Export.Plot
	}

	return cfg, nil
}

type yamlConfig struct {
	Bhloop struct {
		Paths struct {
			OutputDir string `yaml:"output_dir"`
			RunsDir   string `yaml:"runs_dir"`
		} `yaml:"paths"`

		Export struct {
			Format string `yaml:"format"`
			Plot   *bool  `yaml:"plot"`
		} `yaml:"export"`
	} `yaml:"bhloop"`
}
