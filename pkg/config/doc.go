// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for optional .env files and
// github.com/caarlos0/env/v11 for struct-tag parsing:
//
//	type RedisConfig struct {
//	    URL string `env:"REDIS_URL,required"`
//	}
//
//	cfg := config.MustLoad[RedisConfig]()
//
// Errors can be compared with errors.Is against ErrParsingConfig and
// ErrLoadingDotenv. Parse reads from an explicit map and is intended for tests.
package config
