package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/robalobadob/bullscows/internal/state"
)

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

type postgresStore struct {
	pool *pgxpool.Pool
	opts options
}

// NewPostgres connects a pool to connStr and applies the schema, which is
// idempotent DDL executed on every start.
func NewPostgres(ctx context.Context, connStr string, opts ...Option) (Store, error) {
	o := buildOptions(opts)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	files, err := fs.Glob(postgresMigrations, "migrations/postgres/*.sql")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)
	for _, f := range files {
		ddl, err := fs.ReadFile(postgresMigrations, f)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(ddl)); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply %s: %w", f, err)
		}
	}

	var user, database string
	if err := pool.QueryRow(ctx, `SELECT current_user, current_database()`).Scan(&user, &database); err == nil {
		o.log.Info().Str("database", database).Str("user", user).Msg("postgres store ready")
	}
	return &postgresStore{pool: pool, opts: o}, nil
}

func (p *postgresStore) Save(ctx context.Context, id string, gs *state.GameState) error {
	rec, err := encode(gs)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO games (id, config, snapshot, game_over, updated_at)
		VALUES ($1, $2::jsonb, $3::jsonb, $4, now())
		ON CONFLICT (id) DO UPDATE SET
			config = EXCLUDED.config,
			snapshot = EXCLUDED.snapshot,
			game_over = EXCLUDED.game_over,
			updated_at = now()`,
		id, string(rec.Config), string(rec.Snapshot), rec.GameOver,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	return nil
}

func (p *postgresStore) Get(ctx context.Context, id string) (*state.GameState, error) {
	var cfg, snap string
	err := p.pool.QueryRow(ctx, `SELECT config::text, snapshot::text FROM games WHERE id = $1`, id).Scan(&cfg, &snap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return p.opts.decode(record{Config: []byte(cfg), Snapshot: []byte(snap)})
}

func (p *postgresStore) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (p *postgresStore) Close() error {
	p.pool.Close()
	return nil
}
