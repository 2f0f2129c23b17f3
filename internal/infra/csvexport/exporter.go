// Package csvexport writes loop data as comma-separated tables plus a
// plain-text parameter summary.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ports"
)

const (
	RawFileName      = "bh_loop_raw.csv"
	AveragedFileName = "bh_loop_averaged.csv"
	SummaryFileName  = "params_summary.txt"
)

type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

var _ ports.LoopExporter = (*Exporter)(nil)

// Export writes the raw per-cycle samples, the averaged loop, and a plain
// parameter summary under dir. No atomicity: these are final artifacts, and
// a partially written file is left as-is for inspection.
func (e *Exporter) Export(dir string, samples []domain.LoopSample, loop domain.AveragedLoop, params domain.Params) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, writeErr("csvexport.mkdir", dir, err)
	}

	rawPath := filepath.Join(dir, RawFileName)
	if err := writeRaw(rawPath, samples); err != nil {
		return nil, err
	}

	avgPath := filepath.Join(dir, AveragedFileName)
	if err := writeAveraged(avgPath, loop); err != nil {
		return nil, err
	}

	sumPath := filepath.Join(dir, SummaryFileName)
	if err := writeSummary(sumPath, params); err != nil {
		return nil, err
	}

	return []string{rawPath, avgPath, sumPath}, nil
}

func writeRaw(path string, samples []domain.LoopSample) error {
	f, err := os.Create(path)
	if err != nil {
		return writeErr("csvexport.create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"cycle_index", "H", "B"}); err != nil {
		return writeErr("csvexport.raw", path, err)
	}
	for _, s := range samples {
		rec := []string{strconv.Itoa(s.Cycle), fmtFloat(s.H), fmtFloat(s.B)}
		if err := w.Write(rec); err != nil {
			return writeErr("csvexport.raw", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return writeErr("csvexport.raw", path, err)
	}
	if err := f.Close(); err != nil {
		return writeErr("csvexport.raw", path, err)
	}
	return nil
}

func writeAveraged(path string, loop domain.AveragedLoop) error {
	f, err := os.Create(path)
	if err != nil {
		return writeErr("csvexport.create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"H", "B"}); err != nil {
		return writeErr("csvexport.averaged", path, err)
	}
	for _, pt := range loop.Points {
		if err := w.Write([]string{fmtFloat(pt.H), fmtFloat(pt.B)}); err != nil {
			return writeErr("csvexport.averaged", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return writeErr("csvexport.averaged", path, err)
	}
	if err := f.Close(); err != nil {
		return writeErr("csvexport.averaged", path, err)
	}
	return nil
}

func writeSummary(path string, p domain.Params) error {
	var b strings.Builder
	b.WriteString("# Simulation parameters\n")
	for _, kv := range SummaryLines(p) {
		b.WriteString(kv)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return writeErr("csvexport.summary", path, err)
	}
	return nil
}

// SummaryLines renders the parameter set as `name = value` lines for the
// traceability summary.
func SummaryLines(p domain.Params) []string {
	return []string{
		fmt.Sprintf("saturation_flux_density = %s", fmtFloat(p.Bs)),
		fmt.Sprintf("remanence = %s", fmtFloat(p.Br)),
		fmt.Sprintf("coercivity = %s", fmtFloat(p.Hc)),
		fmt.Sprintf("field_amplitude = %s", fmtFloat(p.Hmax)),
		fmt.Sprintf("frequency = %s", fmtFloat(p.Frequency)),
		fmt.Sprintf("wave_shape = %s", p.Shape),
		fmt.Sprintf("samples_per_cycle = %d", p.SamplesPerCycle),
		fmt.Sprintf("cycles = %d", p.Cycles),
		fmt.Sprintf("discard_cycles = %d", p.DiscardCycles),
		fmt.Sprintf("gap_length = %s", fmtFloat(p.GapLength)),
		fmt.Sprintf("path_length = %s", fmtFloat(p.PathLength)),
		fmt.Sprintf("cross_section = %s", fmtFloat(p.CrossSection)),
		fmt.Sprintf("turns = %d", p.Turns),
	}
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func writeErr(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindWrite,
		Path: path,
		Err:  fmt.Errorf("%v: %w", err, domain.ErrWrite),
	}
}
