package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	files       []string
	prefix      string
	requireFile bool
	environment map[string]string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles sets the dotenv files read before parsing. Defaults to ".env".
// Variables already present in the environment are not overridden.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithRequiredFiles makes a missing dotenv file an error.
func WithRequiredFiles() Option {
	return func(o *options) {
		o.requireFile = true
	}
}

// WithPrefix prepends prefix to every env tag, e.g. "APP_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from the given map instead of the process
// environment. Dotenv files are skipped.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
	}
}

// Load parses a configuration struct of type T from environment variables
// described by `env` and `envDefault` struct tags.
//
// Example:
//
//	type Config struct {
//		HTTP httpserver.Config
//		CORS cors.Config
//		PG   pg.Config
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	o := options{files: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	if o.environment == nil {
		for _, f := range o.files {
			if err := godotenv.Load(f); err != nil && o.requireFile {
				return cfg, errors.Join(ErrEnvFile, fmt.Errorf("%s: %w", f, err))
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
