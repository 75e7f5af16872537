package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
	"github.com/iamvenkatgiri/AccessAI/internal/simulation"
)

// SnapshotResult is one written screenshot.
type SnapshotResult struct {
	Mode   domain.ImpairmentMode `json:"mode"`
	Filter string                `json:"filter"`
	Path   string                `json:"path"`
	Bytes  int                   `json:"bytes"`
}

// CaptureSnapshots walks the simulation through each mode and screenshots the
// page once the mode has settled, so every image matches what the view shows.
type CaptureSnapshots struct {
	renderer ports.SnapshotRenderer
	opts     []simulation.Option
}

func NewCaptureSnapshots(r ports.SnapshotRenderer, opts ...simulation.Option) *CaptureSnapshots {
	return &CaptureSnapshots{renderer: r, opts: opts}
}

// Execute writes <outDir>/<mode>.png for each mode (all modes when none given).
// target may be a bare URL or a /simulation?url= route.
func (uc *CaptureSnapshots) Execute(ctx context.Context, target string, modes []domain.ImpairmentMode, outDir string) ([]SnapshotResult, error) {
	pageURL, err := domain.ParseSimulationRoute(target)
	if err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		modes = domain.Modes()
	}
	for _, m := range modes {
		if !m.Valid() {
			return nil, &domain.OpError{Op: "snapshot.validate", Kind: domain.KindInvalidInput, Err: fmt.Errorf("%w: mode %q", domain.ErrInvalidInput, m)}
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, &domain.OpError{Op: "snapshot.mkdir", Kind: domain.KindExecution, Path: outDir, Err: err}
	}

	ctl := simulation.New(uc.opts...)
	defer ctl.Close()

	states, cancel := ctl.Subscribe()
	defer cancel()

	out := make([]SnapshotResult, 0, len(modes))
	for _, m := range modes {
		st, err := selectAndSettle(ctx, ctl, states, m)
		if err != nil {
			return out, err
		}

		png, err := uc.renderer.Capture(ctx, pageURL, st.Filter)
		if err != nil {
			return out, err
		}

		path := filepath.Join(outDir, string(m)+".png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return out, &domain.OpError{Op: "snapshot.write", Kind: domain.KindExecution, Path: path, Err: err}
		}

		out = append(out, SnapshotResult{Mode: m, Filter: st.Filter.String(), Path: path, Bytes: len(png)})
	}
	return out, nil
}

// selectAndSettle selects m and blocks until that selection reaches Idle.
func selectAndSettle(ctx context.Context, ctl *simulation.Controller, states <-chan domain.SimulationState, m domain.ImpairmentMode) (domain.SimulationState, error) {
	ctl.SelectMode(m)
	gen := ctl.State().Generation

	for {
		select {
		case <-ctx.Done():
			return domain.SimulationState{}, &domain.OpError{Op: "snapshot.settle", Kind: domain.KindExecution, Err: ctx.Err()}
		case st, ok := <-states:
			if !ok {
				return domain.SimulationState{}, &domain.OpError{Op: "snapshot.settle", Kind: domain.KindExecution, Err: fmt.Errorf("simulation closed")}
			}
			if st.Generation == gen && st.Settled() {
				return st, nil
			}
		}
	}
}
