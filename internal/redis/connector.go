package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectOptions defines how the Redis record store is reached.
type ConnectOptions struct {
	URL          string        // redis://[user:pass@]host:port/db
	DialTimeout  time.Duration // Redis dial timeout
	ReadTimeout  time.Duration // Redis read timeout
	WriteTimeout time.Duration // Redis write timeout
	PoolSize     int           // Redis connection pool size
}

// connectionLogger handles all Redis connection logging.
type connectionLogger struct {
	logger logger.Logger
}

func (cl *connectionLogger) logConnectionStart(addr string) {
	cl.logger.Info("connecting to redis", logger.String("addr", addr))
}

func (cl *connectionLogger) logSuccess(addr string, elapsed time.Duration) {
	cl.logger.Info("connected to redis",
		logger.String("addr", addr),
		logger.Duration("elapsed", elapsed))
}

func (cl *connectionLogger) logFailure(addr string, elapsed time.Duration, err error) {
	cl.logger.Error("redis unavailable",
		logger.String("addr", addr),
		logger.Duration("elapsed", elapsed),
		logger.Error(err))
}

// Options parses the URL and applies the timeouts and pool size on top.
func (opts ConnectOptions) Options() (*redis.Options, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	ro, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opts.DialTimeout > 0 {
		ro.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		ro.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		ro.WriteTimeout = opts.WriteTimeout
	}
	if opts.PoolSize > 0 {
		ro.PoolSize = opts.PoolSize
	}
	return ro, nil
}

// Connect creates a Redis client and checks it with a single ping bounded
// by ctx. There is no retry: callers decide whether to try again later.
func Connect(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	ro, err := opts.Options()
	if err != nil {
		return nil, err
	}

	cl := &connectionLogger{logger: log}
	cl.logConnectionStart(ro.Addr)

	client := redis.NewClient(ro)
	start := time.Now()
	if err := client.Ping(ctx).Err(); err != nil {
		cl.logFailure(ro.Addr, time.Since(start), err)
		_ = client.Close()
		return nil, fmt.Errorf("redis unavailable at %s: %w", ro.Addr, err)
	}
	cl.logSuccess(ro.Addr, time.Since(start))
	return client, nil
}
