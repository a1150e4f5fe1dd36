package settings

import (
	"errors"
	"fmt"

	"github.com/gomodule/redigo/redis"
)

const DefaultRedisKeyPrefix = "picdisk"

// RedisStore keeps the settings document under a single redis key.
type RedisStore struct {
	pool *redis.Pool
	key  string
}

func NewRedisStore(pool *redis.Pool, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{pool: pool, key: fmt.Sprintf("%s:%s", prefix, documentName)}
}

func (s *RedisStore) Key() string {
	return s.key
}

func (s *RedisStore) Location() string {
	return "redis:" + s.key
}

func (s *RedisStore) Read() ([]byte, error) {
	conn := s.pool.Get()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", s.key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *RedisStore) Write(data []byte) error {
	conn := s.pool.Get()
	defer conn.Close()

	res, err := redis.String(conn.Do("SET", s.key, data))
	if err != nil {
		return err
	}

	if res != "OK" {
		return fmt.Errorf("failed to set key: %v", res)
	}

	return nil
}
