package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "SHOPFRONT_CONFIG_FILE"

type storage struct {
	// Backend selects the kv implementation: memory, file, or postgres.
	Backend     string `mapstructure:"backend"`
	FilePath    string `mapstructure:"file_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

type ratelimit struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type Config struct {
	HTTPServerAddr string    `mapstructure:"http_server_addr"`
	CatalogSource  string    `mapstructure:"catalog_source"`
	PageSize       int       `mapstructure:"page_size"`
	Storage        storage   `mapstructure:"storage"`
	Metrics        metrics   `mapstructure:"metrics"`
	RateLimit      ratelimit `mapstructure:"rate_limit"`
}

// Load reads the optional config file named by --config or the env var,
// on top of the defaults. A missing file path means defaults only.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("catalog_source", "products.json")
	v.SetDefault("page_size", 8)
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.file_path", "shopfront_store.json")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.token", "")
	v.SetDefault("rate_limit.limit", 0)
	v.SetDefault("rate_limit.window_seconds", 60)

	if path := configFilepath(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func configFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])

	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}
