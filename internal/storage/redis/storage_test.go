package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini  *miniredis.Miniredis
	redis *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.redis = NewWithClient(client, DefaultConfig())
	s.Storage = s.redis
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestKeyLayout() {
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, storagetest.NewUser("beaver")))

	s.True(s.mini.Exists("beaverfarm:user:beaver"))
}

func (s *StorageSuite) TestCustomKeyPrefix() {
	cfg := DefaultConfig()
	cfg.KeyPrefix = "staging"
	store := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer store.Close()

	s.Require().NoError(store.CreateUser(s.Ctx, storagetest.NewUser("beaver")))

	s.True(s.mini.Exists("staging:user:beaver"))
	s.False(s.mini.Exists("beaverfarm:user:beaver"))
}

func (s *StorageSuite) TestCorruptRecord() {
	s.Require().NoError(s.mini.Set("beaverfarm:user:broken", "not json"))

	_, err := s.Storage.GetUser(s.Ctx, "broken")

	s.Error(err)
	s.NotErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestNewFailsWithoutServer() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()
	s.mini.Close()

	_, err := New(cfg)

	s.Error(err)
}

func (s *StorageSuite) TestNewConnects() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()

	store, err := New(cfg)

	s.Require().NoError(err)
	s.NoError(store.Close())
}
