package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/DYK-Team/Chan-BH-loop-model/internal/domain"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/infra/logger"
	"github.com/DYK-Team/Chan-BH-loop-model/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "bhloop",
		Short:        "bhloop — Chan-model B-H hysteresis loop simulator",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace("")
			if err != nil {
				return err
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:  ws.root,
				Debug: debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			deps := tui.Deps{
				Store: ws.store,
				Run: func(ctx context.Context, p domain.Params) (domain.RunArtifact, string, error) {
					uc, opts, err := ws.pipeline(ws.cfg.Export.Format, ws.cfg.Export.Plot)
					if err != nil {
						return domain.RunArtifact{}, "", err
					}
					return uc.Execute(ctx, p, opts)
				},
				Logger: logger.L(),
				Debug:  debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .bhloop/logs/bhloop.log")

	cmd.AddCommand(runCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
