package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gamebacklog/backend/internal/models"
)

// RedisStore keeps the library snapshot under a single redis key. Suitable
// when the tracker runs next to an existing redis instance.
type RedisStore struct {
	client *redis.Client
	key    string
	log    *logrus.Logger
}

// NewRedisStore connects to redis and verifies the connection with a ping.
func NewRedisStore(addr, password string, log *logrus.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, persistErr("connect", err)
	}

	return &RedisStore{client: client, key: SnapshotKey, log: log}, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Load(ctx context.Context) ([]models.Game, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.Game{}, nil
	}
	if err != nil {
		return nil, persistErr("load", err)
	}

	games, err := decodeGames(data, s.log)
	if err != nil {
		return nil, persistErr("load", err)
	}
	return games, nil
}

func (s *RedisStore) Save(ctx context.Context, games []models.Game) error {
	data, err := encodeGames(games)
	if err != nil {
		return persistErr("save", err)
	}
	// The snapshot is the source of truth, not a cache: no TTL.
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return persistErr("save", err)
	}
	return nil
}
