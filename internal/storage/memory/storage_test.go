package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yx043749/beaver-farm/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.Ctx = context.Background()
	s.Storage = New()
}
