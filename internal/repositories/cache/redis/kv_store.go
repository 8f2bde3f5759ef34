// Package redis stores the durable currency entries in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

// KeyValueStore keeps each entry as a plain Redis string under prefix+key, without expiry.
type KeyValueStore struct {
	client goredis.Cmdable
	prefix string
}

// NewKeyValueStore wraps client. prefix namespaces the keys, e.g. "spendwise:".
func NewKeyValueStore(client goredis.Cmdable, prefix string) *KeyValueStore {
	return &KeyValueStore{client: client, prefix: prefix}
}

var _ portsrepo.KeyValueStoreFacade = (*KeyValueStore)(nil)

func (s *KeyValueStore) key(key string) string {
	return s.prefix + key
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// NewClient connects to addr and pings it before returning.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}
	return client, nil
}
