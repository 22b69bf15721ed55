package cors

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// DefaultMaxAge is how long browsers may cache preflight results.
const DefaultMaxAge = 21600 * time.Second

// Config is populated from the environment by pkg/config.
type Config struct {
	Origins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	Methods []string      `env:"CORS_METHODS" envSeparator:","`
	Headers []string      `env:"CORS_HEADERS" envSeparator:","`
	MaxAge  time.Duration `env:"CORS_MAX_AGE" envDefault:"6h"`
}

// Options converts the config into policy options.
func (c Config) Options() []Option {
	opts := []Option{WithOrigins(c.Origins...)}
	if len(c.Methods) > 0 {
		opts = append(opts, WithMethods(c.Methods...))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, WithHeaders(c.Headers...))
	}
	if c.MaxAge > 0 {
		opts = append(opts, WithMaxAge(c.MaxAge))
	}
	return opts
}

// Option configures a Policy.
type Option func(*Policy)

// WithOrigins sets the allowed origins, joined into a single header value.
func WithOrigins(origins ...string) Option {
	return func(p *Policy) {
		p.origin = strings.Join(origins, ", ")
	}
}

// WithMethods fixes the allowed methods. They are upper-cased and sorted.
// Without this option the methods are resolved per request.
func WithMethods(methods ...string) Option {
	return func(p *Policy) {
		p.methods = joinMethods(methods)
	}
}

// WithHeaders sets the allowed request headers, upper-cased.
func WithHeaders(headers ...string) Option {
	return func(p *Policy) {
		upper := make([]string, len(headers))
		for i, h := range headers {
			upper[i] = strings.ToUpper(strings.TrimSpace(h))
		}
		p.headers = strings.Join(upper, ", ")
	}
}

// WithMaxAge sets Access-Control-Max-Age. It is sent in whole seconds.
func WithMaxAge(d time.Duration) Option {
	if d < 0 {
		panic("cors.WithMaxAge: duration must be >= 0")
	}
	return func(p *Policy) {
		p.maxAge = d
	}
}

// WithAttachToAll controls whether non-OPTIONS responses get CORS headers.
func WithAttachToAll(attach bool) Option {
	return func(p *Policy) {
		p.attachToAll = attach
	}
}

// WithAutomaticOptions controls whether OPTIONS requests are answered by the
// policy instead of the wrapped handler.
func WithAutomaticOptions(automatic bool) Option {
	return func(p *Policy) {
		p.automaticOptions = automatic
	}
}

// WithMethodResolver replaces the default chi based method discovery.
func WithMethodResolver(fn MethodResolver) Option {
	return func(p *Policy) {
		if fn != nil {
			p.resolver = fn
		}
	}
}

// WithLogger enables debug logging of preflight handling.
func WithLogger(log *slog.Logger) Option {
	return func(p *Policy) {
		p.log = log
	}
}

func joinMethods(methods []string) string {
	upper := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" && !slices.Contains(upper, m) {
			upper = append(upper, m)
		}
	}
	slices.Sort(upper)
	return strings.Join(upper, ", ")
}
