package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New())
//  2. YAML file if UFC_CONFIG points at one
//  3. env vars with prefix UFC_ (UFC_ADDR, UFC_ROUND_SECONDS, ...)
//
// A bare PORT variable also sets the listen port, for platforms that inject
// it.
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("UFC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("UFC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "ufc_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if p := os.Getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.Rounds < 1 || cfg.RoundSeconds < 1 {
		return nil, errors.New("rounds and round_seconds must be positive")
	}
	return &cfg, nil
}
