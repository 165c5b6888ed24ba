package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/robalobadob/bullscows/internal/state"
)

const redisKeyPrefix = "bnc:game:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	opts   options
}

// NewRedis stores each game as a hash under "bnc:game:<id>". A positive ttl
// expires games that have not been saved for that long.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration, opts ...Option) (Store, error) {
	o := buildOptions(opts)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	o.log.Info().Str("addr", addr).Int("db", db).Dur("ttl", ttl).Msg("redis store ready")
	return &redisStore{client: client, ttl: ttl, opts: o}, nil
}

func (r *redisStore) key(id string) string { return redisKeyPrefix + id }

func (r *redisStore) Save(ctx context.Context, id string, gs *state.GameState) error {
	rec, err := encode(gs)
	if err != nil {
		return err
	}
	key := r.key(id)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"config", string(rec.Config),
			"snapshot", string(rec.Snapshot),
			"game_over", strconv.FormatBool(rec.GameOver),
		)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*state.GameState, error) {
	fields, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.opts.decode(record{Config: []byte(fields["config"]), Snapshot: []byte(fields["snapshot"])})
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (r *redisStore) Close() error { return r.client.Close() }
