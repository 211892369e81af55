package storage

import (
	"context"

	"github.com/yx043749/beaver-farm/internal/model"
)

// Storage defines the interface for user record persistence.
//
// Records carry a revision counter. CreateUser stores revision 1; SaveUser
// only succeeds when the record's revision matches the stored one, and
// bumps it on success. A stale write fails with model.ErrRevisionConflict.
// Implementations never retain or return the caller's pointer.
type Storage interface {
	CreateUser(ctx context.Context, user *model.UserRecord) error
	GetUser(ctx context.Context, username string) (*model.UserRecord, error)
	SaveUser(ctx context.Context, user *model.UserRecord) error
	UserExists(ctx context.Context, username string) (bool, error)
}
