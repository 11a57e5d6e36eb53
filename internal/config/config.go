package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env         string `env:"ENV" env-default:"local"`
	API         APIConfig
	Credentials CredentialsConfig
	Log         LogConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL" env-default:"https://dummyjson.com"`
	Timeout time.Duration `env:"API_TIMEOUT" env-default:"30s"`
}

type CredentialsConfig struct {
	// File overrides the default credentials location
	// under the user config directory.
	File string `env:"CREDENTIALS_FILE"`
}

type LogConfig struct {
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"3"`
}
