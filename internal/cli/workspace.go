package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/csvexport"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/paramstore"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/plotexport"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/runstore"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/workspacefinder"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/xlsxexport"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ports"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/usecase"
)

const plotFileName = "bh_loop.png"

type workspaceCtx struct {
	root  string
	cfg   domain.Config
	store *paramstore.INIStore
}

// loadWorkspace resolves the workspace root. Unlike a workspace-bound tool,
// a missing bhloop.yaml is fine: the simulator runs anywhere, falling back
// to the current directory and default configuration.
func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		cfg = domain.DefaultConfig()
	}

	return &workspaceCtx{
		root:  root,
		cfg:   cfg,
		store: paramstore.New(root),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		// No bhloop.yaml above us; treat the current directory as root.
		return wd, nil
	}
	return root, nil
}

// pipeline assembles the run usecase for this workspace.
func (ws *workspaceCtx) pipeline(format string, plot bool) (*usecase.RunSimulation, usecase.RunOptions, error) {
	exporter, err := exporterFor(format)
	if err != nil {
		return nil, usecase.RunOptions{}, err
	}

	var plotter ports.LoopPlotter
	opts := usecase.RunOptions{
		OutputDir:  filepath.Join(ws.root, ws.cfg.Paths.OutputDir),
		SaveParams: true,
	}
	if plot {
		plotter = plotexport.New()
		opts.PlotPath = filepath.Join(ws.root, ws.cfg.Paths.OutputDir, plotFileName)
	}

	artifacts := runstore.NewJSONStore(ws.root, ws.cfg, runstore.WithIndex(true))

	uc := usecase.NewRunSimulation(ws.store, exporter, plotter, artifacts)
	return uc, opts, nil
}

func exporterFor(format string) (ports.LoopExporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return csvexport.New(), nil
	case "xlsx":
		return xlsxexport.New(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (expected csv|xlsx)", format)
	}
}
