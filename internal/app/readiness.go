package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// DBReadinessCheck returns a probe that pings the Postgres pool. A nil pool
// yields a nil check so the readiness handler skips it.
func DBReadinessCheck(pool *pgxpool.Pool) func(ctx context.Context) error {
	if pool == nil {
		return nil
	}
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("op=app.db_readiness: %w", err)
		}
		return nil
	}
}

// RedisReadinessCheck returns a probe that pings Redis. A nil client yields a
// nil check; Redis is optional and its absence never blocks readiness.
func RedisReadinessCheck(rdb *redis.Client) func(ctx context.Context) error {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("op=app.redis_readiness: %w", err)
		}
		return nil
	}
}
