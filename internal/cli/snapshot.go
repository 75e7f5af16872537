package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/logger"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/snapshot"
	"github.com/iamvenkatgiri/AccessAI/internal/simulation"
	"github.com/iamvenkatgiri/AccessAI/internal/usecase"
)

func snapshotCmd(g *globalOpts) *cobra.Command {
	var modes []string
	var all bool
	var out string
	var controlURL string

	c := &cobra.Command{
		Use:   "snapshot <url|route>",
		Short: "Screenshot a page as it looks under each simulated impairment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := parseModes(modes, all)
			if err != nil {
				return err
			}

			ws, done, err := g.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer done()

			outDir := out
			if outDir == "" {
				outDir = filepath.Join(ws.root, ws.cfg.Paths.SnapshotsDir)
			}

			ropts := []snapshot.Option{snapshot.WithLogger(logger.Component("snapshot"))}
			if controlURL != "" {
				ropts = append(ropts, snapshot.WithControlURL(controlURL))
			}
			renderer := snapshot.New(ws.cfg.Snapshot, ropts...)
			defer func() { _ = renderer.Close() }()

			uc := usecase.NewCaptureSnapshots(renderer,
				simulation.WithDelays(simulation.Delays{
					Transition: ws.cfg.Simulation.TransitionDelay,
					Settle:     ws.cfg.Simulation.SettleDelay,
				}),
				simulation.WithLogger(logger.Component("simulation")),
			)

			results, err := uc.Execute(cmd.Context(), args[0], selected, outDir)
			w := cmdOut(cmd)
			for _, r := range results {
				fmt.Fprintf(w, "%-14s %s (%d bytes)\n", r.Mode, r.Path, r.Bytes)
			}
			if err != nil {
				logger.L().Error("snapshot.failed", "err", err)
				return err
			}
			logger.L().Info("snapshot.ok", "count", len(results), "out", outDir)
			return nil
		},
	}

	c.Flags().StringSliceVarP(&modes, "mode", "m", nil, "Impairment mode(s) to capture (repeatable)")
	c.Flags().BoolVar(&all, "all", false, "Capture every mode")
	c.Flags().StringVarP(&out, "out", "o", "", "Output directory (defaults to the workspace snapshots dir)")
	c.Flags().StringVar(&controlURL, "browser", "", "DevTools URL of a running browser instead of launching one")
	c.MarkFlagsMutuallyExclusive("mode", "all")
	return c
}

func parseModes(names []string, all bool) ([]domain.ImpairmentMode, error) {
	if all {
		return domain.Modes(), nil
	}
	if len(names) == 0 {
		return nil, errors.New("choose modes with --mode or use --all")
	}

	out := make([]domain.ImpairmentMode, 0, len(names))
	seen := map[domain.ImpairmentMode]bool{}
	for _, n := range names {
		m, err := domain.ParseImpairmentMode(n)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}
