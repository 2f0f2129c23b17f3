package ports

import "github.com/DYK-Team/Chan-BH-loop-model/internal/domain"

// LoopExporter writes the raw per-cycle samples, the averaged loop, and a
// parameter summary under dir. Returns the paths it wrote.
type LoopExporter interface {
	Export(dir string, samples []domain.LoopSample, loop domain.AveragedLoop, params domain.Params) ([]string, error)
}

// LoopPlotter renders the averaged loop to an image file.
type LoopPlotter interface {
	Render(loop domain.AveragedLoop, path string) error
}
