// Command server runs the entity resource with every httpkit helper wired in:
// content negotiation, JSON/JSONP and CSV output, ETag validation and CORS.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/httpkit/handler"
	"github.com/dmitrymomot/httpkit/modules/entity"
	"github.com/dmitrymomot/httpkit/pkg/config"
	"github.com/dmitrymomot/httpkit/pkg/cors"
	"github.com/dmitrymomot/httpkit/pkg/httpserver"
	"github.com/dmitrymomot/httpkit/pkg/logger"
	"github.com/dmitrymomot/httpkit/pkg/pg"
	"github.com/dmitrymomot/httpkit/pkg/requestid"
)

type appConfig struct {
	Log  logger.Config
	HTTP httpserver.Config
	CORS cors.Config
	PG   pg.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}

	log := logger.NewFromConfig(cfg.Log, logger.WithContextExtractors(requestid.LoggerExtractor()))
	slog.SetDefault(log)

	store, checks, closeStore, err := openStore(ctx, cfg.PG, log)
	if err != nil {
		return err
	}
	defer closeStore()

	policy := cors.New(append(cfg.CORS.Options(), cors.WithLogger(log))...)

	r := chi.NewRouter()
	r.Use(middleware.RealIP, requestid.Middleware, middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthHandler(log, 2*time.Second, checks...))
	r.Mount("/", entity.Router(entity.RouterOptions{
		Store:        store,
		Logger:       log,
		CORS:         policy,
		ErrorHandler: handler.NewErrorHandler(log, handler.ErrorHandlerConfig{ErrorPage: entity.ErrorPage}),
	}))

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

// openStore connects to PostgreSQL when configured and falls back to a
// seeded in-memory store otherwise.
func openStore(ctx context.Context, cfg pg.Config, log *slog.Logger) (entity.Store, []httpserver.Check, func(), error) {
	if !cfg.Enabled() {
		log.InfoContext(ctx, "PG_CONN_URL not set, using in-memory store", logger.Component("main"))
		return entity.NewMemoryStore(seed()...), nil, func() {}, nil
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := pg.Migrate(ctx, pool, entity.Migrations(), cfg, log); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}
	return entity.NewPostgresStore(pool), checks, pool.Close, nil
}
