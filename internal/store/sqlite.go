// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Upserting and loading game records.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/robalobadob/bullscows/internal/state"
)

//go:embed migrations/sqlite/*.sql
var sqliteMigrations embed.FS

type sqliteStore struct {
	db   *sql.DB
	opts options
}

// NewSQLite opens (creating if missing) the database at dsn and migrates it.
func NewSQLite(ctx context.Context, dsn string, opts ...Option) (Store, error) {
	o := buildOptions(opts)
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, sqliteMigrations, "migrations/sqlite", o.log); err != nil {
		_ = db.Close()
		return nil, err
	}
	o.log.Info().Str("path", dsn).Msg("sqlite store ready")
	return &sqliteStore{db: db, opts: o}, nil
}

// openDB ensures the parent directory exists, then opens dsn with a busy
// timeout, WAL journaling and foreign keys enforced.
func openDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("sqlite: empty path")
	}
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every *.sql file under dir in lexical order, each in its
// own transaction, skipping files already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS, dir string, log zerolog.Logger) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, path.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		name := path.Base(f)
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlText, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlText)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

func (s *sqliteStore) Save(ctx context.Context, id string, gs *state.GameState) error {
	rec, err := encode(gs)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, config, snapshot, game_over, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            config = excluded.config,
            snapshot = excluded.snapshot,
            game_over = excluded.game_over,
            updated_at = excluded.updated_at`,
		id, string(rec.Config), string(rec.Snapshot), rec.GameOver, now,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*state.GameState, error) {
	var cfg, snap string
	err := s.db.QueryRowContext(ctx, `SELECT config, snapshot FROM games WHERE id=?`, id).Scan(&cfg, &snap)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return s.opts.decode(record{Config: []byte(cfg), Snapshot: []byte(snap)})
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
