package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisPersister keeps the record under a single string key.
type RedisPersister struct {
	client *redis.Client
	key    string
}

func NewRedisPersister(client *redis.Client, key string) *RedisPersister {
	return &RedisPersister{client: client, key: key}
}

func (p *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save writes without expiry; the record lives until reset.
func (p *RedisPersister) Save(ctx context.Context, data []byte) error {
	return p.client.Set(ctx, p.key, data, 0).Err()
}
