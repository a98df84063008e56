package history

import (
	"fmt"
	"time"

	"github.com/pathfinder-core/server/internal/counselor/model"
	"github.com/redis/go-redis/v9"
)

// New builds a HistoryRepository from config. The redis driver needs a
// client; the memory driver ignores it.
func New(cfg model.HistoryConfig, maxTurns int, rdb redis.Cmdable) (model.HistoryRepository, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryRepository(maxTurns), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("history driver %q requires a redis client", cfg.Driver)
		}
		ttl, err := time.ParseDuration(cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid history TTL %q: %w", cfg.TTL, err)
		}
		return NewRedisRepository(rdb, ttl, maxTurns), nil
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.Driver)
	}
}
