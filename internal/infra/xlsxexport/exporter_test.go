package xlsxexport

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

func TestExport_WorkbookShape(t *testing.T) {
	dir := t.TempDir()

	samples := []domain.LoopSample{
		{Cycle: 0, Phase: 0, H: 0, B: 0},
		{Cycle: 0, Phase: 1, H: 25, B: 0.2},
	}
	loop := domain.AveragedLoop{Points: []domain.LoopPoint{
		{H: 0, B: 0.1}, {H: 25, B: 0.3}, {H: 0, B: 0.1},
	}}

	paths, err := New().Export(dir, samples, loop, domain.DefaultParams())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 file, got %d", len(paths))
	}

	f, err := excelize.OpenFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Raw", "Averaged", "Summary"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %q (idx=%d err=%v)", sheet, idx, err)
		}
	}

	if got, _ := f.GetCellValue("Raw", "A1"); got != "cycle_index" {
		t.Fatalf("Raw!A1 = %q", got)
	}
	if got, _ := f.GetCellValue("Raw", "B3"); got != "25" {
		t.Fatalf("Raw!B3 = %q, want 25", got)
	}
	if got, _ := f.GetCellValue("Averaged", "A1"); got != "H" {
		t.Fatalf("Averaged!A1 = %q", got)
	}

	rows, err := f.GetRows("Averaged")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1+len(loop.Points) {
		t.Fatalf("expected %d averaged rows, got %d", 1+len(loop.Points), len(rows))
	}

	if got, _ := f.GetCellValue("Summary", "A2"); got != "saturation_flux_density" {
		t.Fatalf("Summary!A2 = %q", got)
	}
}

func TestExport_UnwritableDestination(t *testing.T) {
	samples := []domain.LoopSample{{Cycle: 0}}
	loop := domain.AveragedLoop{}

	_, err := New().Export(filepath.Join(t.TempDir(), "no\x00dir"), samples, loop, domain.DefaultParams())
	if !domain.IsKind(err, domain.KindWrite) {
		t.Fatalf("expected write kind, got %v", err)
	}
}
