package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "RELCAT_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.token", typ: kString, env: "RELCAT_SERVER_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Server.Token = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.Token },
	},
	{
		key: "registry.base_url", typ: kString, env: "RELCAT_REGISTRY_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Registry.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Registry.BaseURL },
	},
	{
		key: "registry.package", typ: kString, env: "RELCAT_REGISTRY_PACKAGE",
		apply:   func(cfg *Config, v any) { cfg.Registry.Package = v.(string) },
		extract: func(cfg Config) any { return cfg.Registry.Package },
	},
	{
		key: "registry.timeout", typ: kString, env: "RELCAT_REGISTRY_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Registry.Timeout = v.(string) },
		extract: func(cfg Config) any { return cfg.Registry.Timeout },
	},
	{
		key: "registry.refresh_interval", typ: kString, env: "RELCAT_REGISTRY_REFRESH_INTERVAL",
		apply:   func(cfg *Config, v any) { cfg.Registry.RefreshInterval = v.(string) },
		extract: func(cfg Config) any { return cfg.Registry.RefreshInterval },
	},
	{
		key: "storage.data_dir", typ: kString, env: "RELCAT_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "RELCAT_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyBackend(cfg *Config, b Backend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
