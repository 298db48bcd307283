package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/docchat/docchat/internal/model"
	apperrors "github.com/docchat/docchat/internal/pkg/errors"
)

type redisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
	TTLHours int    `json:"ttl_hours"`
}

type redisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func init() {
	Register("redis", createRedisStore)
}

func createRedisStore(args interface{}) (Store, error) {
	config := &redisConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Addr == "" {
		return nil, fmt.Errorf("session_store redis addr is required")
	}
	if config.Prefix == "" {
		config.Prefix = "conv:"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &redisStore{
		rdb:    rdb,
		prefix: config.Prefix,
		ttl:    time.Duration(config.TTLHours) * time.Hour,
	}, nil
}

func (s *redisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *redisStore) Load(ctx context.Context, sessionID string) ([]model.Turn, error) {
	items, err := s.rdb.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Turn{}, nil
		}
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	turns := make([]model.Turn, 0, len(items))
	for _, item := range items {
		var turn model.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("decode turn in session %s: %w", sessionID, err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *redisStore) Append(ctx context.Context, sessionID string, turns ...model.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("%w: encode turn: %v", apperrors.ErrMemoryWrite, err)
		}
		values = append(values, data)
	}
	key := s.key(sessionID)
	if err := s.rdb.RPush(ctx, key, values...).Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMemoryWrite, err)
	}
	if s.ttl > 0 {
		// Session lifetime stays owned by the store, refreshed on write.
		if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("%w: refresh ttl: %v", apperrors.ErrMemoryWrite, err)
		}
	}
	return nil
}
