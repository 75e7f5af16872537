package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// LoadFile reads an accessai.yaml over domain.DefaultConfig().
// On error the defaults are returned alongside it.
func LoadFile(path string) (domain.Config, error) {
	defaults := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return defaults, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return defaults, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, defaults, dto)
}
