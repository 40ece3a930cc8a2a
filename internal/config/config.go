package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings is the environment-driven configuration for the CLI. Everything
// has a sensible default so the binary runs with no environment at all.
type Settings struct {
	// CacheDir is where auto-provisioned binaries are stored.
	CacheDir string `env:"YTPIPE_CACHE_DIR" env-default:"./bin"`

	// LogLevel is the zerolog level name ("debug", "info", ...).
	LogLevel string `env:"YTPIPE_LOG_LEVEL" env-default:"info"`

	// Timeout bounds a whole pipeline run. Zero disables the timeout,
	// which matches the original wrapper's behavior.
	Timeout time.Duration `env:"YTPIPE_TIMEOUT" env-default:"0s"`
}

// Load reads Settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
