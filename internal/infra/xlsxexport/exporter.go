// Package xlsxexport writes the loop data as a single workbook for users who
// post-process results in a spreadsheet rather than feeding them to a
// simulator.
package xlsxexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/csvexport"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ports"
)

const FileName = "bh_loop.xlsx"

const (
	sheetRaw      = "Raw"
	sheetAveraged = "Averaged"
	sheetSummary  = "Summary"
)

type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

var _ ports.LoopExporter = (*Exporter)(nil)

// Export writes one workbook with Raw, Averaged and Summary sheets carrying
// the same tables as the CSV exporter.
func (e *Exporter) Export(dir string, samples []domain.LoopSample, loop domain.AveragedLoop, params domain.Params) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, writeErr("xlsxexport.mkdir", dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetRaw)
	f.SetCellValue(sheetRaw, "A1", "cycle_index")
	f.SetCellValue(sheetRaw, "B1", "H")
	f.SetCellValue(sheetRaw, "C1", "B")
	for i, s := range samples {
		row := i + 2
		f.SetCellValue(sheetRaw, fmt.Sprintf("A%d", row), s.Cycle)
		f.SetCellValue(sheetRaw, fmt.Sprintf("B%d", row), s.H)
		f.SetCellValue(sheetRaw, fmt.Sprintf("C%d", row), s.B)
	}

	f.NewSheet(sheetAveraged)
	f.SetCellValue(sheetAveraged, "A1", "H")
	f.SetCellValue(sheetAveraged, "B1", "B")
	for i, pt := range loop.Points {
		row := i + 2
		f.SetCellValue(sheetAveraged, fmt.Sprintf("A%d", row), pt.H)
		f.SetCellValue(sheetAveraged, fmt.Sprintf("B%d", row), pt.B)
	}

	f.NewSheet(sheetSummary)
	f.SetCellValue(sheetSummary, "A1", "parameter")
	f.SetCellValue(sheetSummary, "B1", "value")
	for i, kv := range csvexport.SummaryLines(params) {
		name, value, _ := strings.Cut(kv, " = ")
		row := i + 2
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), value)
	}

	path := filepath.Join(dir, FileName)
	if err := f.SaveAs(path); err != nil {
		return nil, writeErr("xlsxexport.save", path, err)
	}
	return []string{path}, nil
}

func writeErr(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindWrite,
		Path: path,
		Err:  fmt.Errorf("%v: %w", err, domain.ErrWrite),
	}
}
