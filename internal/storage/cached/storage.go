package cached

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage"
)

// Storage is a read-through LRU cache in front of another store.
// Only use it when this process is the sole writer; a stale entry is
// still caught by the backing store's revision check and evicted.
type Storage struct {
	next storage.Storage
	lru  *expirable.LRU[string, *model.UserRecord]

	// OnLookup, if set, is called for every GetUser with whether it was a cache hit
	OnLookup func(hit bool)
}

// New wraps next with a cache of up to size records, each kept for at most ttl
func New(next storage.Storage, size int, ttl time.Duration) *Storage {
	return &Storage{
		next: next,
		lru:  expirable.NewLRU[string, *model.UserRecord](size, nil, ttl),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	if err := s.next.CreateUser(ctx, user); err != nil {
		return err
	}
	s.lru.Add(user.Username, user.Clone())
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.UserRecord, error) {
	if user, ok := s.lru.Get(username); ok {
		s.observe(true)
		return user.Clone(), nil
	}
	s.observe(false)

	user, err := s.next.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	s.lru.Add(username, user.Clone())
	return user, nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.UserRecord) error {
	err := s.next.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrRevisionConflict) || errors.Is(err, model.ErrUserNotFound) {
			s.lru.Remove(user.Username)
		}
		return err
	}
	s.lru.Add(user.Username, user.Clone())
	return nil
}

func (s *Storage) UserExists(ctx context.Context, username string) (bool, error) {
	if s.lru.Contains(username) {
		return true, nil
	}
	return s.next.UserExists(ctx, username)
}

// Invalidate drops a cached record
func (s *Storage) Invalidate(username string) {
	s.lru.Remove(username)
}

// Len returns the number of cached records
func (s *Storage) Len() int {
	return s.lru.Len()
}

func (s *Storage) observe(hit bool) {
	if s.OnLookup != nil {
		s.OnLookup(hit)
	}
}
