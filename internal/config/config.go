package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	SaveBackendFile     = "file"
	SaveBackendSqlite   = "sqlite"
	SaveBackendPostgres = "postgres"

	DefaultEnvFile    = ".env"
	defaultSqliteFile = "battleships.db"
)

type Config struct {
	Stage        string `env:"STAGE" envDefault:"dev"`
	SaveBackend  string `env:"SAVE_BACKEND" envDefault:"file"`
	SaveDir      string `env:"SAVE_DIR" envDefault:"saves"`
	DatabaseUrl  string `env:"DATABASE_URL"`
	SpectatePort int    `env:"SPECTATE_PORT" envDefault:"0"`
	AudioEnabled bool   `env:"AUDIO_ENABLED" envDefault:"true"`
	LogDir       string `env:"LOG_DIR" envDefault:"logs"`
	Debug        bool   `env:"DEBUG" envDefault:"false"`
}

// Load reads envFile into the process environment (skipped in prod and
// when the file does not exist) and parses the configuration from it.
func Load(envFile string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SaveBackend == SaveBackendSqlite && cfg.DatabaseUrl == "" {
		cfg.DatabaseUrl = filepath.Join(cfg.SaveDir, defaultSqliteFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateStage accepts the stages the game knows about.
func ValidateStage(stage string) error {
	if stage != StageProd && stage != StageDev {
		return cerr.ErrInvalidStage(stage)
	}
	return nil
}

func (c Config) Validate() error {
	if err := ValidateStage(c.Stage); err != nil {
		return err
	}

	switch c.SaveBackend {
	case SaveBackendFile, SaveBackendSqlite:
	case SaveBackendPostgres:
		if c.DatabaseUrl == "" {
			return cerr.ErrMissingDatabaseUrl(c.SaveBackend)
		}
	default:
		return cerr.ErrInvalidSaveBackend(c.SaveBackend)
	}

	if c.SpectatePort < 0 || c.SpectatePort > 65535 {
		return fmt.Errorf("spectate port out of range: %d", c.SpectatePort)
	}
	return nil
}
