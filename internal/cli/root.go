package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iamvenkatgiri/AccessAI/internal/buildinfo"
	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/fsworkspace"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/logger"
	"github.com/iamvenkatgiri/AccessAI/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	cmd := &cobra.Command{
		Use:          "accessai",
		Short:        "AccessAI: accessibility suggestions and vision-impairment simulation",
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, tui.Start{})
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .accessai/logs/accessai.log")
	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		submitCmd(opts),
		simulateCmd(opts),
		snapshotCmd(opts),
		modesCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

func runTUI(opts *globalOpts, start tui.Start) error {
	ws, done, err := opts.open(nil)
	if err != nil {
		return err
	}
	defer done()

	deps := tui.Deps{
		WorkspaceLocator:     ws.locator,
		WorkspaceInitializer: fsworkspace.NewInitializer(),
		Config:               ws.cfg,
		Suggestions:          ws.suggestions,
		Logger:               logger.L(),
		Debug:                opts.debug,
	}
	if ws.store != nil {
		deps.Reports = ws.store
	}

	logger.L().Info("tui.start", "url", start.URL, "mode", string(start.Mode))
	return tui.Run(deps, start)
}

func simulateCmd(opts *globalOpts) *cobra.Command {
	var mode string

	c := &cobra.Command{
		Use:   "simulate [url|route]",
		Short: "Preview a page under a simulated vision impairment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := domain.ParseImpairmentMode(mode)
			if err != nil {
				return err
			}

			start := tui.Start{Mode: m}
			if len(args) == 1 {
				target, err := domain.ParseSimulationRoute(args[0])
				if err != nil {
					return err
				}
				start.URL = target
			}
			return runTUI(opts, start)
		},
	}

	c.Flags().StringVarP(&mode, "mode", "m", "", "Impairment mode to preselect (see `accessai modes`)")
	return c
}
