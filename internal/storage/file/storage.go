package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage"
)

// Storage keeps one JSON document per user in a directory
type Storage struct {
	dir string

	// Serializes read-modify-write cycles within this process
	mu sync.Mutex
}

// New creates a file storage rooted at dir, creating it if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create users dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// path returns the document path for a username; usernames are validated
// at registration to be safe file names
func (s *Storage) path(username string) string {
	return filepath.Join(s.dir, filepath.Base(username)+".json")
}

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(user.Username)); err == nil {
		return model.ErrUsernameExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	saved := user.Clone()
	saved.Revision = 1
	if err := s.write(saved); err != nil {
		return err
	}
	user.Revision = saved.Revision
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(username)
}

func (s *Storage) SaveUser(ctx context.Context, user *model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.read(user.Username)
	if err != nil {
		return err
	}
	if stored.Revision != user.Revision {
		return model.ErrRevisionConflict
	}

	saved := user.Clone()
	saved.Revision++
	if err := s.write(saved); err != nil {
		return err
	}
	user.Revision = saved.Revision
	return nil
}

func (s *Storage) UserExists(ctx context.Context, username string) (bool, error) {
	_, err := os.Stat(s.path(username))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *Storage) read(username string) (*model.UserRecord, error) {
	data, err := os.ReadFile(s.path(username))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
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

// write replaces the user document via a temp file rename
func (s *Storage) write(user *model.UserRecord) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(user.Username))
}
