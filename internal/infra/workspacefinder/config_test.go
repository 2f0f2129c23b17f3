package workspacefinder

import (
	"strings"
	"testing"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected defaults on missing config, got %+v", cfg)
	}
}

func TestLoadConfig_OverlaysOnDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, strings.Join([]string{
		"bhloop:",
		"  paths:",
		"    output_dir: data",
		"  export:",
		"    plot: true",
		"",
	}, "\n"))

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Paths.OutputDir != "data" {
		t.Fatalf("expected output dir override, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.RunsDir != "runs" {
		t.Fatalf("expected default runs dir, got %q", cfg.Paths.RunsDir)
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("expected default format, got %q", cfg.Export.Format)
	}
	if !cfg.Export.Plot {
		t.Fatalf("expected plot enabled")
	}
}

func TestLoadConfig_RejectsMalformedYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "bhloop: [not a mapping\n")

	if _, err := LoadConfig(root); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
