package tui

import (
	"context"
	"log/slog"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ports"
)

// RunFunc executes one full simulation pipeline and returns the run
// artifact plus the id it was stored under.
type RunFunc func(ctx context.Context, p domain.Params) (domain.RunArtifact, string, error)

type Deps struct {
	Store ports.ParameterStore
	Run   RunFunc

	Logger *slog.Logger
	Debug  bool
}
