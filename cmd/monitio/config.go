package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/monitio/pkg/httpserver"
	"github.com/dmitrymomot/monitio/pkg/mongo"
	"github.com/dmitrymomot/monitio/pkg/pg"
	"github.com/dmitrymomot/monitio/pkg/redis"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"

	PubSubRedis  = "redis"
	PubSubMemory = "memory"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	AppName  string `env:"APP_NAME" envDefault:"monitio"`
	LogLevel string `env:"LOG_LEVEL"`

	// Testing swaps the bus for the in-process pending queue.
	Testing        bool `env:"TESTING" envDefault:"false"`
	AllowAnonymous bool `env:"ALLOW_ANONYMOUS" envDefault:"true"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	PubSubDriver  string `env:"PUBSUB_DRIVER" envDefault:"redis"`
	BusBuffer     int    `env:"PUBSUB_MEMORY_BUFFER" envDefault:"64"`

	// Without a signing key every caller is anonymous.
	JWTSigningKey string `env:"JWT_SIGNING_KEY"`
	JWTCookieName string `env:"JWT_COOKIE_NAME" envDefault:"monitio_token"`
	JWTQueryParam string `env:"JWT_QUERY_PARAM" envDefault:"token"`

	// Forwarding headers trusted for the client address, in priority order.
	TrustedProxyHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`

	HTTP  httpserver.Config
	Redis redis.Config
	PG    pg.Config
	Mongo mongo.Config
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.PG.ConnectionString == "" {
			return fmt.Errorf("%w: PG_CONN_URL is required for the postgres driver", ErrInvalidConfig)
		}
	case StorageMongo:
		if c.Mongo.ConnectionURL == "" {
			return fmt.Errorf("%w: MONGODB_URL is required for the mongo driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.StorageDriver)
	}

	switch c.PubSubDriver {
	case PubSubRedis, PubSubMemory:
	default:
		return fmt.Errorf("%w: unknown PUBSUB_DRIVER %q", ErrInvalidConfig, c.PubSubDriver)
	}

	if _, err := c.level(); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	return nil
}

// level returns the LOG_LEVEL override, or nil when unset.
func (c Config) level() (*slog.Level, error) {
	if c.LogLevel == "" {
		return nil, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, err
	}
	return &l, nil
}
