package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type implRedis struct {
	client *redis.Client
	key    string
}

// NewRedis keeps the JSON array in a single string key.
func NewRedis(client *redis.Client, key string) Store {
	return &implRedis{client: client, key: key}
}

func (s *implRedis) LoadAll(ctx context.Context) ([]recording.Recording, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []recording.Recording{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", recording.ErrStorage, s.key, err)
	}
	return decode(data)
}

func (s *implRedis) SaveAll(ctx context.Context, recs []recording.Recording) error {
	data, err := encode(recs)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", recording.ErrStorage, s.key, err)
	}
	return nil
}

func (s *implRedis) Close() error {
	return s.client.Close()
}
