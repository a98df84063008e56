package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pathfinder-core/server/internal/counselor/model"
	errx "github.com/pathfinder-core/server/internal/core/error"
	logx "github.com/pathfinder-core/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores turn history in a Redis list per session, trimmed
// to the configured bound after every append.
type RedisRepository struct {
	rdb      redis.Cmdable
	ttl      time.Duration
	maxTurns int
}

func NewRedisRepository(rdb redis.Cmdable, ttl time.Duration, maxTurns int) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl, maxTurns: maxTurns}
}

func (r *RedisRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:turns", sessionID)
}

func (r *RedisRepository) Append(ctx context.Context, sessionID string, turn model.Turn) error {
	b, err := json.Marshal(turn)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal turn")
		return fmt.Errorf("marshal turn: %w", err)
	}
	key := r.sessionKey(sessionID)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push turn to redis")
		return errx.WrapRedis(err)
	}
	// drop oldest turns beyond the bound
	if r.maxTurns > 0 {
		if err := r.rdb.LTrim(ctx, key, int64(-r.maxTurns), -1).Err(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to trim turn history")
			return errx.WrapRedis(err)
		}
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on session key")
		}
	}
	return nil
}

func (r *RedisRepository) Load(ctx context.Context, sessionID string) ([]model.Turn, error) {
	key := r.sessionKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Turn{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load turn history from redis")
		return nil, errx.WrapRedis(err)
	}

	turns := make([]model.Turn, 0, len(rows))
	for i, s := range rows {
		var t model.Turn
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal turn")
			return nil, fmt.Errorf("unmarshal turn at index %d: %w", i, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *RedisRepository) Clear(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete turn history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisRepository) Count(ctx context.Context, sessionID string) (int, error) {
	key := r.sessionKey(sessionID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to count turns in redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.HistoryRepository = (*RedisRepository)(nil)
