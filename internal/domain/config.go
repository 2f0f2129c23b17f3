package domain

// Config represents the workspace configuration loaded from bhloop.yaml.
type Config struct {
	Paths  PathsConfig
	Export ExportConfig
}

type PathsConfig struct {
	OutputDir string
	RunsDir   string
}

type ExportConfig struct {
	Format string // csv|xlsx
	Plot   bool
}

// DefaultConfig provides sane defaults if bhloop.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			OutputDir: "output",
			RunsDir:   "runs",
		},
		Export: ExportConfig{
			Format: "csv",
			Plot:   false,
		},
	}
}

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root string
}
