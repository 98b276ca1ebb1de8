package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load populates a T from the process environment.
//
// Optional dotenv files are read first; values already present in the
// environment win over the files. A missing file is not an error, so the same
// binary runs unchanged with or without a local .env.
//
//	type AppConfig struct {
//		Testing        bool `env:"TESTING" envDefault:"false"`
//		AllowAnonymous bool `env:"ALLOW_ANONYMOUS" envDefault:"true"`
//	}
//
//	cfg, err := config.Load[AppConfig](".env")
func Load[T any](files ...string) (T, error) {
	var cfg T
	if err := loadDotenv(files...); err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure. Use it from main where a
// broken configuration must stop startup.
func MustLoad[T any](files ...string) T {
	cfg, err := Load[T](files...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// Parse populates a T from the given variables only, ignoring the process
// environment. Tests use it to avoid mutating global state.
func Parse[T any](vars map[string]string) (T, error) {
	var cfg T
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Join(ErrLoadingDotenv, err)
		}
	}
	return nil
}
