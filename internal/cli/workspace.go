package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/logger"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/reportstore"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/suggestapi"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/workspacefinder"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
)

// globalOpts holds the persistent root flags.
type globalOpts struct {
	debug     bool
	workspace string
}

type workspaceCtx struct {
	root  string
	found bool
	cfg   domain.Config

	locator ports.WorkspaceLocator
	loader  ports.ConfigLoader

	suggestions ports.SuggestionService
	// store is nil outside a workspace.
	store ports.ReportStore
}

// open resolves the workspace and starts file logging under it.
// echo mirrors warnings to w; pass nil for the TUI.
func (o *globalOpts) open(echo io.Writer) (*workspaceCtx, func(), error) {
	ws, err := loadWorkspace(o.workspace)
	if err != nil {
		return nil, func() {}, err
	}

	cleanup, lerr := logger.Setup(logger.Config{
		Root:  ws.root,
		Debug: o.debug,
		Echo:  echo,
	})
	done := func() {
		if cleanup != nil {
			_ = cleanup()
		}
	}
	if lerr != nil && echo != nil {
		fmt.Fprintf(echo, "warning: file logging disabled: %v\n", lerr)
	}

	ws.suggestions = suggestapi.NewFromConfig(ws.cfg.API, logger.Component("suggestapi"))
	logger.L().Debug("workspace.open", "root", ws.root, "found", ws.found, "api", ws.cfg.API.URL)
	return ws, done, nil
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	finder := workspacefinder.NewFinder()

	root, found, err := resolveWorkspaceRoot(finder, workspaceFlag)
	if err != nil {
		return nil, err
	}

	ws := &workspaceCtx{root: root, locator: finder, loader: finder}

	cfg, err := ws.loader.LoadConfig(root)
	switch {
	case err == nil:
	case domain.IsKind(err, domain.KindNotFound):
		found = false
	default:
		return nil, err
	}
	ws.cfg = cfg
	ws.found = found

	if found {
		ws.store = reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true))
	}
	return ws, nil
}

// resolveWorkspaceRoot returns the explicit --workspace path, the nearest
// directory holding accessai.yaml, or the working directory when there is none.
func resolveWorkspaceRoot(locator ports.WorkspaceLocator, workspaceFlag string) (string, bool, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, true, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}
	wd, _ = filepath.Abs(wd)

	root, err := locator.FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return wd, false, nil
		}
		return "", false, err
	}
	return root, true, nil
}

func cmdOut(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
