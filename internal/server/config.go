// Package server exposes the augmentation pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                    build information
//	GET  /v1/presets                 preset names, descriptions and rule order
//	GET  /v1/presets/{name}/config   effective TOML configuration of a preset
//	POST /v1/augment                 augment the scene document in the body
//
// The augment endpoint accepts seed, preset, sort and refresh query
// parameters. Without seed the run uses seed 42; seed=0 is a real seed. Responses carry an X-Run-Id header and an X-Cache header of
// HIT or MISS. Errors are JSON objects with code and message fields.
package server

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces the environment variables read by LoadConfig.
const envPrefix = "BOOGIE"

// Config holds server settings, read from BOOGIE_* environment variables.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	RedisURL        string        `envconfig:"REDIS_URL"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"168h"`
	CachePrefix     string        `envconfig:"CACHE_PREFIX" default:"boogie:"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"8388608"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
