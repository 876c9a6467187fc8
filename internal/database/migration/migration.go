package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Every step is idempotent; EnsureSchema runs all of them on each start.
var steps = []migrationStep{
	{
		Name: "create_table_enterence",
		SQL: `CREATE TABLE IF NOT EXISTS enterence (
  id           BIGSERIAL   PRIMARY KEY,
  counter      INTEGER     NOT NULL,
  text         TEXT        NOT NULL DEFAULT '',
  last_entered TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_table_reviews",
		SQL: `CREATE TABLE IF NOT EXISTS reviews (
  id         BIGSERIAL   PRIMARY KEY,
  phone      TEXT        NOT NULL DEFAULT '',
  text       TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_reviews_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews (created_at DESC);`,
	},
}

// EnsureSchema creates the enterence and reviews tables when they are missing.
// There is no versioning: the column set is fixed and existing tables are left alone.
func EnsureSchema(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Logger()

	log.Info().
		Str("event", "db_schema_ensure").
		Str("status", "starting").
		Int("steps", len(steps)).
		Msg("ensuring schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Err(err).
				Str("event", "db_schema_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("schema step failed")
			return fmt.Errorf("schema step %s failed: %w", step.Name, err)
		}

		log.Debug().
			Str("event", "db_schema_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("schema step applied")
	}

	log.Info().
		Str("event", "db_schema_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("schema ready")

	return nil
}
