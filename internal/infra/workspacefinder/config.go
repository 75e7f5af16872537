package workspacefinder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/config"
)

// EnvAPIURL overrides api.url when set.
const EnvAPIURL = "ACCESSAI_API_URL"

// LoadConfig loads accessai.yaml from the workspace root and applies defaults.
// A missing file yields the defaults (with env overrides) and a not_found error.
func LoadConfig(root string) (domain.Config, error) {
	cfg, err := config.LoadFile(filepath.Join(root, ConfigFile))
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return domain.DefaultConfig(), err
	}
	return ApplyEnv(cfg, os.Getenv), err
}

// ApplyEnv applies environment overrides on top of cfg.
func ApplyEnv(cfg domain.Config, getenv func(string) string) domain.Config {
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		cfg.API.URL = v
	}
	return cfg
}
