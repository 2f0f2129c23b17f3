package ports

import "github.com/DYK-Team/Chan-BH-loop-model/internal/domain"

// ArtifactStore persists run records for traceability.
type ArtifactStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
}
