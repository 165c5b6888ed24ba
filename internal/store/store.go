// internal/store/store.go
//
// Persistence for game states, keyed by game ID.
//
// Every backend stores the same record:
//   - config: the full GameConfig JSON, secret included (server side only).
//   - snapshot: GameState.ToJSON(), which hides the secret while a game runs.
//
// Loading always goes through state.FromJSON with the stored config, so the
// returned GameState is independent of anything held by the store.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/bullscows/internal/state"
)

// ErrNotFound is returned by Get and Delete for unknown IDs.
var ErrNotFound = errors.New("game not found")

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store defines the persistence interface for game states.
type Store interface {
	// Save persists or replaces the state stored under id.
	Save(ctx context.Context, id string, s *state.GameState) error

	// Get loads the state stored under id, or returns ErrNotFound.
	Get(ctx context.Context, id string) (*state.GameState, error)

	// Delete removes id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver        string // memory | sqlite | postgres | redis
	SQLitePath    string
	PostgresURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
}

// Option tunes a backend.
type Option func(*options)

type options struct {
	log       zerolog.Logger
	stateOpts []state.Option
}

// WithLogger sets the logger used for connection and migration events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithStateOptions are applied to every GameState returned by Get.
func WithStateOptions(opts ...state.Option) Option {
	return func(o *options) { o.stateOpts = append(o.stateOpts, opts...) }
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open connects to the backend named by cfg.Driver ("" means memory).
func Open(ctx context.Context, cfg Config, opts ...Option) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(opts...), nil
	case "sqlite":
		return NewSQLite(ctx, cfg.SQLitePath, opts...)
	case "postgres":
		return NewPostgres(ctx, cfg.PostgresURL, opts...)
	case "redis":
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// record is the stored form of one game.
type record struct {
	Config   []byte
	Snapshot []byte
	GameOver bool
}

func encode(s *state.GameState) (record, error) {
	cfg, err := json.Marshal(s.Config())
	if err != nil {
		return record{}, fmt.Errorf("encode config: %w", err)
	}
	snap, err := s.ToJSON()
	if err != nil {
		return record{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return record{Config: cfg, Snapshot: snap, GameOver: s.GameOver()}, nil
}

func (o options) decode(rec record) (*state.GameState, error) {
	var cfg state.GameConfig
	if err := json.Unmarshal(rec.Config, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return state.FromJSON(rec.Snapshot, &cfg, o.stateOpts...)
}
