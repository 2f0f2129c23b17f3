// Package usecase wires the pure numeric core to the stores and exporters.
package usecase

import (
	"context"
	"time"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ports"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/usecase/average"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/usecase/simulate"
)

// loopClosureTol is the tolerance used when reporting whether the averaged
// loop closed, in normalized (T / A/m) units.
const loopClosureTol = 1e-6

type RunSimulation struct {
	params    ports.ParameterStore // optional
	exporter  ports.LoopExporter
	plotter   ports.LoopPlotter   // optional
	artifacts ports.ArtifactStore // optional
	now       func() time.Time
}

type Option func(*RunSimulation)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(uc *RunSimulation) { uc.now = now }
}

func NewRunSimulation(params ports.ParameterStore, exporter ports.LoopExporter, plotter ports.LoopPlotter, artifacts ports.ArtifactStore, opts ...Option) *RunSimulation {
	uc := &RunSimulation{
		params:    params,
		exporter:  exporter,
		plotter:   plotter,
		artifacts: artifacts,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RunOptions control the output side of one run.
type RunOptions struct {
	OutputDir  string
	PlotPath   string // rendered only when non-empty and a plotter is wired
	SaveParams bool   // persist p as the next run's starting point
}

// Execute runs the whole pipeline: validate and simulate, average, export,
// then persist parameters and the run record. Nothing is written unless both
// simulation and averaging succeed, so no partial numeric results ever reach
// disk.
func (uc *RunSimulation) Execute(ctx context.Context, p domain.Params, opts RunOptions) (domain.RunArtifact, string, error) {
	run := domain.RunArtifact{
		Params:    p,
		StartedAt: uc.now(),
	}

	w, err := domain.BuildWaveform(p)
	if err != nil {
		return run, "", err
	}

	samples, err := simulate.Simulate(p, w)
	if err != nil {
		return run, "", err
	}

	loop, err := average.Average(samples, p.DiscardCycles)
	if err != nil {
		return run, "", err
	}

	if err := ctx.Err(); err != nil {
		return run, "", err
	}

	outputs, err := uc.exporter.Export(opts.OutputDir, samples, loop, p)
	if err != nil {
		return run, "", err
	}

	if uc.plotter != nil && opts.PlotPath != "" {
		if err := uc.plotter.Render(loop, opts.PlotPath); err != nil {
			return run, "", err
		}
		outputs = append(outputs, opts.PlotPath)
	}

	run.FinishedAt = uc.now()
	run.SampleCount = len(samples)
	run.MaxB = loop.MaxB()
	run.LoopArea = loop.Area()
	run.Closed = loop.Closed(loopClosureTol)
	run.Outputs = outputs

	if uc.params != nil && opts.SaveParams {
		if err := uc.params.Save(p); err != nil {
			return run, "", err
		}
	}

	var runID string
	if uc.artifacts != nil {
		id, err := uc.artifacts.SaveRun(run)
		if err != nil {
			return run, "", err
		}
		runID = id
		run.ID = id
	}

	return run, runID, nil
}
