// Package store selects and builds the configured record store backend.
package store

import (
	"fmt"

	"github.com/naitik09090/backend-games/internal/config"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/logger"
	redisconn "github.com/naitik09090/backend-games/internal/redis"
	"github.com/naitik09090/backend-games/internal/store/memory"
	"github.com/naitik09090/backend-games/internal/store/mongo"
	"github.com/naitik09090/backend-games/internal/store/redis"
)

// Open builds the backend named by cfg.StoreBackend. No connection is made
// here; backends dial on first use.
func Open(cfg *config.Config, log logger.Logger) (domain.Store, error) {
	log = log.With(logger.String("backend", cfg.StoreBackend))

	switch cfg.StoreBackend {
	case config.BackendMongo:
		s, err := mongo.New(mongo.Options{
			URL:            cfg.DatabaseURL,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.ConnectTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendRedis:
		return redis.New(redisconn.ConnectOptions{
			URL:          cfg.DatabaseURL,
			DialTimeout:  cfg.RedisDT,
			ReadTimeout:  cfg.RedisRT,
			WriteTimeout: cfg.RedisWT,
			PoolSize:     cfg.RedisPoolSize,
		}, cfg.ConnectTimeout, log), nil

	case config.BackendMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
