// Package redisstore provides a Redis-backed implementation of domain.Slot.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/runoshun/taskflow/internal/domain"
)

// DefaultTimeout bounds every Redis round trip.
const DefaultTimeout = 3 * time.Second

// KeyPrefix is prepended to the slot name to form the Redis key.
const KeyPrefix = "taskflow:"

// Store implements domain.Slot with a single Redis string key.
type Store struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

// Open connects to the Redis server at addr and verifies it answers PING.
func Open(ctx context.Context, addr, key string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return NewWithClient(client, key), nil
}

// NewWithClient creates a Store using an existing client.
func NewWithClient(client *redis.Client, key string) *Store {
	return &Store{
		client:  client,
		key:     KeyPrefix + key,
		timeout: DefaultTimeout,
	}
}

// Key returns the Redis key holding the slot.
func (s *Store) Key() string {
	return s.key
}

// Load reads the task list. found is false if the key does not exist.
func (s *Store) Load() ([]domain.Task, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", s.key, err)
	}

	tasks, err := domain.UnmarshalTasks(data)
	if err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

// Save overwrites the key with the task list.
func (s *Store) Save(tasks []domain.Task) error {
	data, err := domain.MarshalTasks(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

// Close shuts down the connection to the server.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements domain.Slot.
var _ domain.Slot = (*Store)(nil)
