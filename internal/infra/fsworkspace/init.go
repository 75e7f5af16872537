package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iamvenkatgiri/AccessAI/internal/app/template"
	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/logger"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	const op = "fsworkspace.init"
	root := filepath.Clean(spec.Root)

	defaults := domain.DefaultConfig()
	dirs := []string{
		filepath.Join(root, defaults.Paths.ReportsDir),
		filepath.Join(root, defaults.Paths.SnapshotsDir),
		filepath.Join(root, filepath.FromSlash(logger.Dir)),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: filepath.Join(root, ".gitignore"), Err: err}
	}

	vars := templateVars(spec, defaults)

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, filepath.FromSlash(rel))

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dst, Err: err}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		// Only YAML carries placeholders; sample pages are copied as-is.
		if strings.HasSuffix(rel, ".yaml") {
			out, err := template.RenderString(string(b), vars)
			if err != nil {
				return &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: p, Err: err}
			}
			b = []byte(out)
		}

		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dst, Err: err}
		}
		return nil
	})
}

func templateVars(spec domain.WorkspaceSpec, defaults domain.Config) map[string]string {
	apiURL := strings.TrimSpace(spec.APIURL)
	if apiURL == "" {
		apiURL = defaults.API.URL
	}
	return map[string]string{
		"API_URL":          apiURL,
		"TRANSITION_DELAY": defaults.Simulation.TransitionDelay.String(),
		"SETTLE_DELAY":     defaults.Simulation.SettleDelay.String(),
	}
}

func ensureGitignore(root string) error {
	const header = "# AccessAI"
	entries := []string{
		"reports/",
		"snapshots/",
		".accessai/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
