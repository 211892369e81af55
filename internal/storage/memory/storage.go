package memory

import (
	"context"
	"sync"

	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	users map[string]*model.UserRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users: make(map[string]*model.UserRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return model.ErrUsernameExists
	}

	user.Revision = 1
	s.users[user.Username] = user.Clone()
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user.Clone(), nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.Username]
	if !ok {
		return model.ErrUserNotFound
	}
	if stored.Revision != user.Revision {
		return model.ErrRevisionConflict
	}

	saved := user.Clone()
	saved.Revision++
	s.users[user.Username] = saved
	user.Revision = saved.Revision
	return nil
}

func (s *Storage) UserExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username]
	return ok, nil
}
