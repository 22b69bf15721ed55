// Package pg bootstraps a PostgreSQL connection pool with pgx/v5.
//
// Connect parses Config, opens a *pgxpool.Pool and pings it, retrying with
// exponential backoff (github.com/sethvargo/go-retry) until the database is
// reachable or the attempts are exhausted. Migrate applies goose migrations
// from an fs.FS, typically an embed.FS shipped next to the queries that
// need the schema. Healthcheck plugs the pool into readiness probes.
//
//	cfg := config.MustLoad[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// Query results are plain pgx.Rows, which jsonenc and csvstream consume
// directly.
package pg
