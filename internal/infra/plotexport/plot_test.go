package plotexport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

func TestRender_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.png")

	loop := domain.AveragedLoop{Points: []domain.LoopPoint{
		{H: -100, B: -0.5}, {H: 0, B: 0.3}, {H: 100, B: 0.5}, {H: 0, B: -0.3}, {H: -100, B: -0.5},
	}}

	if err := New().Render(loop, path); err != nil {
		t.Fatalf("Render error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected plot file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("plot file is empty")
	}
}

func TestRender_RejectsDegenerateLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.png")

	err := New().Render(domain.AveragedLoop{}, path)
	if !domain.IsKind(err, domain.KindInvalidParameter) {
		t.Fatalf("expected invalid_parameter, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("no file should be written for a degenerate loop")
	}
}

func TestRender_UnwritableDestination(t *testing.T) {
	loop := domain.AveragedLoop{Points: []domain.LoopPoint{
		{H: 0, B: 0}, {H: 1, B: 1},
	}}

	err := New().Render(loop, filepath.Join(t.TempDir(), "missing", "loop.png"))
	if !domain.IsKind(err, domain.KindWrite) {
		t.Fatalf("expected write kind, got %v", err)
	}
}
