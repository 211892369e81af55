// Package storagetest holds behavior tests shared by every storage backend.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage"
)

// Suite exercises the storage.Storage contract. Embed it in a backend's
// suite and set Storage and Ctx in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var created = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

// NewUser builds a populated record for storage round trips
func NewUser(username string) *model.UserRecord {
	u := model.NewUserRecord(username, "$2a$10$hash", created)
	completed := created.Add(time.Hour)
	u.Habits = append(u.Habits, model.Habit{
		ID:               "habit-1",
		Name:             "Read",
		Streak:           2,
		TotalCompletions: 5,
		LastCompleted:    &completed,
		CreatedAt:        created,
	})
	u.Crop = &model.CropInstance{ID: "wheat", PlantedAt: created, CurrentGrowth: 1}
	u.Storage["egg"] = 2
	u.ResearchHistory["bread"] = model.ResearchAttemptState{Attempts: 2, RevealedClues: 1}
	return u
}

func (s *Suite) TestCreateAndGetUser() {
	user := NewUser("beaver")

	err := s.Storage.CreateUser(s.Ctx, user)
	s.Require().NoError(err)
	s.Equal(int64(1), user.Revision)

	retrieved, err := s.Storage.GetUser(s.Ctx, "beaver")
	s.Require().NoError(err)
	s.Equal("beaver", retrieved.Username)
	s.Equal(int64(1), retrieved.Revision)
	s.Require().Len(retrieved.Habits, 1)
	s.Equal("Read", retrieved.Habits[0].Name)
	s.True(user.Habits[0].LastCompleted.Equal(*retrieved.Habits[0].LastCompleted))
	s.Equal(2, retrieved.Storage["egg"])
	s.Equal(2, retrieved.ResearchHistory["bread"].Attempts)
	s.Require().NotNil(retrieved.Crop)
	s.Equal("wheat", retrieved.Crop.ID)
	s.Equal(model.InitialMaxHabits, retrieved.MaxHabits)
}

func (s *Suite) TestCreateDuplicateUser() {
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, NewUser("beaver")))

	err := s.Storage.CreateUser(s.Ctx, NewUser("beaver"))

	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *Suite) TestGetUserNotFound() {
	_, err := s.Storage.GetUser(s.Ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *Suite) TestUserExists() {
	exists, err := s.Storage.UserExists(s.Ctx, "beaver")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.Storage.CreateUser(s.Ctx, NewUser("beaver")))

	exists, err = s.Storage.UserExists(s.Ctx, "beaver")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *Suite) TestSaveUserBumpsRevision() {
	user := NewUser("beaver")
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, user))

	user.Storage["wheat"] = 5
	err := s.Storage.SaveUser(s.Ctx, user)
	s.Require().NoError(err)
	s.Equal(int64(2), user.Revision)

	retrieved, err := s.Storage.GetUser(s.Ctx, "beaver")
	s.Require().NoError(err)
	s.Equal(int64(2), retrieved.Revision)
	s.Equal(5, retrieved.Storage["wheat"])
}

func (s *Suite) TestSaveUserStaleRevision() {
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, NewUser("beaver")))

	first, err := s.Storage.GetUser(s.Ctx, "beaver")
	s.Require().NoError(err)
	second, err := s.Storage.GetUser(s.Ctx, "beaver")
	s.Require().NoError(err)

	first.TotalHarvests = 1
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, first))

	second.TotalHarvests = 7
	err = s.Storage.SaveUser(s.Ctx, second)
	s.ErrorIs(err, model.ErrRevisionConflict)
	s.Equal(int64(1), second.Revision)

	retrieved, err := s.Storage.GetUser(s.Ctx, "beaver")
	s.Require().NoError(err)
	s.Equal(1, retrieved.TotalHarvests)
}

func (s *Suite) TestSaveUserNotFound() {
	err := s.Storage.SaveUser(s.Ctx, NewUser("ghost"))
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *Suite) TestReturnedRecordsAreIndependent() {
	user := NewUser("beaver")
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, user))
	user.Storage["egg"] = 99

	retrieved, err := s.Storage.GetUser(s.Ctx, "beaver")
	s.Require().NoError(err)
	s.Equal(2, retrieved.Storage["egg"])
	retrieved.Habits[0].Name = "changed"

	again, err := s.Storage.GetUser(s.Ctx, "beaver")
	s.Require().NoError(err)
	s.Equal("Read", again.Habits[0].Name)
}

func (s *Suite) TestUsersAreIsolated() {
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, NewUser("alice")))
	bob := NewUser("bob")
	bob.TotalHarvests = 3
	s.Require().NoError(s.Storage.CreateUser(s.Ctx, bob))

	alice, err := s.Storage.GetUser(s.Ctx, "alice")
	s.Require().NoError(err)
	s.Zero(alice.TotalHarvests)
}
