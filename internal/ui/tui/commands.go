package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
)

func cmdLoadParams(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Store == nil {
			return paramsLoadedMsg{params: domain.DefaultParams(), found: false}
		}
		p, found, err := deps.Store.Load()
		return paramsLoadedMsg{params: p, found: found, err: err}
	}
}

func listenRunner(ch <-chan runDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return runDoneMsg{err: errors.New("runner channel closed")}
		}
		return msg
	}
}

func startRunAsync(deps Deps, p domain.Params) (chan runDoneMsg, tea.Cmd) {
	ch := make(chan runDoneMsg, 1)

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("run.start",
			"shape", string(p.Shape),
			"hmax", p.Hmax,
			"frequency", p.Frequency,
			"cycles", p.Cycles,
			"gap_length", p.GapLength,
		)

		if deps.Run == nil {
			ch <- runDoneMsg{err: errors.New("run function not wired")}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		run, id, err := deps.Run(ctx, p)
		if err != nil {
			log.Error("run.failed", "err", err)
		} else {
			log.Info("run.ok",
				"saved_id", id,
				"samples", run.SampleCount,
				"max_b", run.MaxB,
				"loop_area", run.LoopArea,
				"closed", run.Closed,
			)
		}

		ch <- runDoneMsg{run: run, id: id, err: err}
	}()

	return ch, listenRunner(ch)
}
