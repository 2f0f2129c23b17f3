package ports

import "github.com/DYK-Team/Chan-BH-loop-model/internal/domain"

// WorkspaceInitializer scaffolds a workspace (dirs, starter config).
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}

// WorkspaceLocator finds the workspace root from a starting directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
