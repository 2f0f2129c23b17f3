package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

func runCmd() *cobra.Command {
	var (
		workspace string
		outDir    string
		resume    bool
		noSave    bool
		plot      bool
		format    string
		output    string
		shapeFlag string
	)

	// Flag targets; only flags the user actually set override the
	// resumed or default parameter set.
	fp := domain.DefaultParams()

	c := &cobra.Command{
		Use:   "run",
		Short: "Run one Chan-model simulation and export the B-H loop data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			params := domain.DefaultParams()
			if resume {
				loaded, found, err := ws.store.Load()
				if err != nil {
					return err
				}
				if found {
					params = loaded
				}
			}
			if err := applyParamFlags(cmd, &params, fp, shapeFlag); err != nil {
				return err
			}

			exportFormat := ws.cfg.Export.Format
			if cmd.Flags().Changed("format") {
				exportFormat = format
			}
			renderPlot := ws.cfg.Export.Plot
			if cmd.Flags().Changed("plot") {
				renderPlot = plot
			}

			uc, opts, err := ws.pipeline(exportFormat, renderPlot)
			if err != nil {
				return err
			}
			opts.SaveParams = !noSave
			if outDir != "" {
				abs, err := filepath.Abs(outDir)
				if err != nil {
					return fmt.Errorf("invalid output dir: %w", err)
				}
				opts.OutputDir = abs
				if opts.PlotPath != "" {
					opts.PlotPath = filepath.Join(abs, plotFileName)
				}
			}

			run, runID, err := uc.Execute(cmd.Context(), params, opts)
			if err != nil {
				return err
			}

			return printRun(os.Stdout, run, runID, output)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&outDir, "out", "", "Output directory (default: <workspace>/output)")
	c.Flags().BoolVar(&resume, "resume", false, "Start from the parameters persisted by the previous run")
	c.Flags().BoolVar(&noSave, "no-save-params", false, "Do not persist this run's parameters")
	c.Flags().BoolVar(&plot, "plot", false, "Render the averaged loop as a PNG")
	c.Flags().StringVar(&format, "format", "csv", "Export format: csv|xlsx")
	c.Flags().StringVar(&output, "output", "pretty", "Result printing: pretty|json")

	c.Flags().Float64Var(&fp.Bs, "bs", fp.Bs, "Saturation flux density, T")
	c.Flags().Float64Var(&fp.Br, "br", fp.Br, "Remanence, T")
	c.Flags().Float64Var(&fp.Hc, "hc", fp.Hc, "Coercivity, A/m")
	c.Flags().Float64Var(&fp.Hmax, "hmax", fp.Hmax, "Excitation field amplitude, A/m")
	c.Flags().Float64Var(&fp.Frequency, "frequency", fp.Frequency, "Excitation frequency, Hz")
	c.Flags().StringVar(&shapeFlag, "shape", string(fp.Shape), "Excitation shape: sine|triangle")
	c.Flags().IntVar(&fp.SamplesPerCycle, "samples", fp.SamplesPerCycle, "Samples per cycle")
	c.Flags().IntVar(&fp.Cycles, "cycles", fp.Cycles, "Number of simulated cycles")
	c.Flags().IntVar(&fp.DiscardCycles, "discard", fp.DiscardCycles, "Transient cycles discarded by the averager")
	c.Flags().Float64Var(&fp.GapLength, "gap", fp.GapLength, "Air gap length, m (0 = ungapped)")
	c.Flags().Float64Var(&fp.PathLength, "path-length", fp.PathLength, "Magnetic path length, m")
	c.Flags().Float64Var(&fp.CrossSection, "cross-section", fp.CrossSection, "Core cross-section, m²")
	c.Flags().IntVar(&fp.Turns, "turns", fp.Turns, "Winding turns")

	return c
}

// applyParamFlags copies only the flags the user set onto params, so
// --resume plus a couple of overrides behaves as expected.
func applyParamFlags(cmd *cobra.Command, params *domain.Params, fp domain.Params, shapeFlag string) error {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	set("bs", func() { params.Bs = fp.Bs })
	set("br", func() { params.Br = fp.Br })
	set("hc", func() { params.Hc = fp.Hc })
	set("hmax", func() { params.Hmax = fp.Hmax })
	set("frequency", func() { params.Frequency = fp.Frequency })
	set("samples", func() { params.SamplesPerCycle = fp.SamplesPerCycle })
	set("cycles", func() { params.Cycles = fp.Cycles })
	set("discard", func() { params.DiscardCycles = fp.DiscardCycles })
	set("gap", func() { params.GapLength = fp.GapLength })
	set("path-length", func() { params.PathLength = fp.PathLength })
	set("cross-section", func() { params.CrossSection = fp.CrossSection })
	set("turns", func() { params.Turns = fp.Turns })

	if cmd.Flags().Changed("shape") {
		shape, err := domain.ParseWaveShape(shapeFlag)
		if err != nil {
			return err
		}
		params.Shape = shape
	}
	return nil
}

func printRun(w io.Writer, run domain.RunArtifact, runID string, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"run_id": runID,
			"run":    run,
		})
	case "pretty", "":
		printPrettyRun(w, run, runID)
		return nil
	default:
		return fmt.Errorf("unsupported output %q (expected pretty|json)", output)
	}
}

func printPrettyRun(w io.Writer, run domain.RunArtifact, runID string) {
	total := run.FinishedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		total = 0
	}

	p := run.Params

	fmt.Fprintf(w, "Material:   Bs=%g T, Br=%g T, Hc=%g A/m\n", p.Bs, p.Br, p.Hc)
	fmt.Fprintf(w, "Excitation: %s, %g A/m @ %g Hz\n", p.Shape, p.Hmax, p.Frequency)
	if p.GapLength > 0 {
		fmt.Fprintf(w, "Air gap:    %g m (path %g m)\n", p.GapLength, p.PathLength)
	}
	fmt.Fprintf(w, "Cycles:     %d (discard %d), %d samples/cycle\n", p.Cycles, p.DiscardCycles, p.SamplesPerCycle)
	fmt.Fprintf(w, "Duration:   %s\n", total.Round(time.Millisecond))
	fmt.Fprintln(w)

	closed := "yes"
	if !run.Closed {
		closed = "NO"
	}
	fmt.Fprintf(w, "Max |B|:    %.6g T\n", run.MaxB)
	fmt.Fprintf(w, "Loop area:  %.6g J/m³ per cycle\n", run.LoopArea)
	fmt.Fprintf(w, "Closed:     %s\n", closed)
	if runID != "" {
		fmt.Fprintf(w, "Run ID:     %s\n", runID)
	}

	if len(run.Outputs) > 0 {
		fmt.Fprintln(w, "Outputs:")
		for _, out := range run.Outputs {
			fmt.Fprintf(w, "  - %s\n", out)
		}
	}
}
