package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each user record is one JSON string; saves use WATCH/MULTI so a
// concurrent writer aborts the transaction.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	saved := user.Clone()
	saved.Revision = 1

	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, s.userKey(user.Username), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrUsernameExists
	}

	user.Revision = saved.Revision
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.UserRecord, error) {
	return s.get(ctx, s.client, username)
}

func (s *Storage) SaveUser(ctx context.Context, user *model.UserRecord) error {
	key := s.userKey(user.Username)
	saved := user.Clone()
	saved.Revision++

	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := s.get(ctx, tx, user.Username)
		if err != nil {
			return err
		}
		if stored.Revision != user.Revision {
			return model.ErrRevisionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrRevisionConflict
	}
	if err != nil {
		return err
	}

	user.Revision = saved.Revision
	return nil
}

func (s *Storage) UserExists(ctx context.Context, username string) (bool, error) {
	n, err := s.client.Exists(ctx, s.userKey(username)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) get(ctx context.Context, c redis.Cmdable, username string) (*model.UserRecord, error) {
	data, err := c.Get(ctx, s.userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", username, err)
	}
	return &user, nil
}
