package config

// Config holds all relcat settings.
type Config struct {
	Server   ServerConfig
	Registry RegistryConfig
	Storage  StorageConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port  int
	Token string
}

type RegistryConfig struct {
	BaseURL         string
	Package         string
	Timeout         string
	RefreshInterval string
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4700,
		},
		Registry: RegistryConfig{
			BaseURL:         "https://registry.npmjs.org",
			Package:         "electron",
			Timeout:         "30s",
			RefreshInterval: "0",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/relcat/config.json, then applies RELCAT_* environment
// variable overrides.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}
