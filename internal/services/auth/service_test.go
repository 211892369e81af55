package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/yx043749/beaver-farm/internal/dependencies/mocks"
	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage/memory"
	"github.com/yx043749/beaver-farm/internal/testutil"
)

const day = 24 * time.Hour

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = s.newService(DefaultConfig())
	s.ctx = context.Background()
}

func (s *ServiceSuite) newService(cfg Config) *Service {
	cfg.Secret = "test-secret"
	cfg.BcryptCost = bcrypt.MinCost
	return New(s.storage, s.clock, cfg, testutil.NopLogger())
}

func (s *ServiceSuite) registerAndLogin(username string) *Session {
	_, err := s.service.Register(s.ctx, username, "password123")
	s.Require().NoError(err)
	session, err := s.service.Login(s.ctx, username, "password123")
	s.Require().NoError(err)
	return session
}

// Register tests

func (s *ServiceSuite) TestRegisterCreatesRecord() {
	user, err := s.service.Register(s.ctx, "beaver", "password123")
	s.Require().NoError(err)

	s.Equal("beaver", user.Username)
	s.Equal(3, user.MaxHabits)
	s.Equal(s.clock.Now(), user.CreatedAt)
	s.Equal(s.clock.Now(), user.LastLogin)

	stored, err := s.storage.GetUser(s.ctx, "beaver")
	s.Require().NoError(err)
	s.NotEqual("password123", stored.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "beaver", "password123")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "beaver", "different")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterValidation() {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "password123"},
		{"short username", "ab", "password123"},
		{"long username", "abcdefghijklmnopqrstu", "password123"},
		{"path separator", "be/aver", "password123"},
		{"dot dot", "..", "password123"},
		{"empty password", "beaver", ""},
		{"short password", "beaver", "12345"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.Register(s.ctx, tc.username, tc.password)
			s.ErrorIs(err, model.ErrValidation)
		})
	}
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.Register(s.ctx, "beaver", "password123")
	s.Require().NoError(err)
	s.clock.Advance(2 * day)

	session, err := s.service.Login(s.ctx, "beaver", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("beaver", session.Username)
	s.Equal(3, session.MaxHabits)
	s.Equal(s.clock.Now().Add(30*day), session.ExpiresAt)

	stored, err := s.storage.GetUser(s.ctx, "beaver")
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), stored.LastLogin)
}

func (s *ServiceSuite) TestLoginTokenClaims() {
	session := s.registerAndLogin("beaver")

	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(session.Token, claims)
	s.Require().NoError(err)
	s.Equal("beaver", claims.Subject)
	s.Equal(s.clock.Now().Unix(), claims.IssuedAt.Unix())
	s.Equal(s.clock.Now().Add(30*day).Unix(), claims.ExpiresAt.Unix())
}

func (s *ServiceSuite) TestLoginUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Register(s.ctx, "beaver", "password123")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "beaver", "wrong-password")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginAfterLongIdleIsAllowed() {
	_, err := s.service.Register(s.ctx, "beaver", "password123")
	s.Require().NoError(err)
	s.clock.Advance(90 * day)

	session, err := s.service.Login(s.ctx, "beaver", "password123")
	s.Require().NoError(err)

	username, err := s.service.ValidateToken(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal("beaver", username)
}

// ValidateToken tests

func (s *ServiceSuite) TestValidateToken() {
	session := s.registerAndLogin("beaver")

	username, err := s.service.ValidateToken(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal("beaver", username)
}

func (s *ServiceSuite) TestValidateTokenMissing() {
	_, err := s.service.ValidateToken(s.ctx, "")
	s.ErrorIs(err, model.ErrMissingToken)
}

func (s *ServiceSuite) TestValidateTokenGarbage() {
	_, err := s.service.ValidateToken(s.ctx, "not-a-token")
	s.ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestValidateTokenWrongSecret() {
	session := s.registerAndLogin("beaver")
	other := New(s.storage, s.clock, Config{Secret: "other-secret"}, testutil.NopLogger())

	_, err := other.ValidateToken(s.ctx, session.Token)
	s.ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestValidateTokenRejectsOtherAlgorithms() {
	s.registerAndLogin("beaver")
	claims := jwt.RegisteredClaims{
		Subject:   "beaver",
		ExpiresAt: jwt.NewNumericDate(s.clock.Now().Add(day)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(s.ctx, token)
	s.ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestValidateTokenWithoutExpiry() {
	s.registerAndLogin("beaver")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "beaver"}).
		SignedString([]byte("test-secret"))
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(s.ctx, token)
	s.ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestValidateTokenExpired() {
	session := s.registerAndLogin("beaver")
	s.clock.Advance(30*day + time.Second)

	_, err := s.service.ValidateToken(s.ctx, session.Token)
	s.ErrorIs(err, model.ErrSessionExpired)
}

func (s *ServiceSuite) TestValidateTokenUnknownUser() {
	session := s.registerAndLogin("beaver")
	s.storage = memory.New()
	s.service = s.newService(DefaultConfig())

	_, err := s.service.ValidateToken(s.ctx, session.Token)
	s.ErrorIs(err, model.ErrInvalidToken)
}

func (s *ServiceSuite) TestValidateTokenIdleWindowIndependentOfTokenTTL() {
	cfg := DefaultConfig()
	cfg.TokenTTL = 90 * day
	s.service = s.newService(cfg)
	session := s.registerAndLogin("beaver")

	s.clock.Advance(30 * day)
	_, err := s.service.ValidateToken(s.ctx, session.Token)
	s.Require().NoError(err, "exactly 30 idle days is still allowed")

	s.clock.Advance(day)
	_, err = s.service.ValidateToken(s.ctx, session.Token)
	s.ErrorIs(err, model.ErrSessionExpired)
}

func (s *ServiceSuite) TestValidateTokenHasNoSideEffects() {
	session := s.registerAndLogin("beaver")
	before, err := s.storage.GetUser(s.ctx, "beaver")
	s.Require().NoError(err)
	s.clock.Advance(day)

	_, err = s.service.ValidateToken(s.ctx, session.Token)
	s.Require().NoError(err)

	after, err := s.storage.GetUser(s.ctx, "beaver")
	s.Require().NoError(err)
	s.Equal(before, after)
}

// AutoLogin / Logout / LastLogin tests

func (s *ServiceSuite) TestAutoLoginRefreshesIdleWindow() {
	cfg := DefaultConfig()
	cfg.TokenTTL = 90 * day
	s.service = s.newService(cfg)
	session := s.registerAndLogin("beaver")

	s.clock.Advance(20 * day)
	user, err := s.service.AutoLogin(s.ctx, "beaver")
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), user.LastLogin)
	s.Equal(3, user.MaxHabits)

	s.clock.Advance(20 * day)
	_, err = s.service.ValidateToken(s.ctx, session.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestLogoutRecordsTime() {
	session := s.registerAndLogin("beaver")
	s.clock.Advance(time.Hour)

	err := s.service.Logout(s.ctx, "beaver")
	s.Require().NoError(err)

	stored, err := s.storage.GetUser(s.ctx, "beaver")
	s.Require().NoError(err)
	s.Require().NotNil(stored.LastLogout)
	s.Equal(s.clock.Now(), *stored.LastLogout)

	_, err = s.service.ValidateToken(s.ctx, session.Token)
	s.NoError(err, "tokens are stateless")
}

func (s *ServiceSuite) TestLastLogin() {
	created := s.clock.Now()
	s.registerAndLogin("beaver")

	info, err := s.service.LastLogin(s.ctx, "beaver")
	s.Require().NoError(err)
	s.Equal(created, info.CreatedAt)
	s.Equal(created, info.LastLogin)
}

func (s *ServiceSuite) TestLastLoginFallsBackToCreatedAt() {
	user := model.NewUserRecord("legacy", "hash", s.clock.Now())
	user.LastLogin = time.Time{}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))

	info, err := s.service.LastLogin(s.ctx, "legacy")
	s.Require().NoError(err)
	s.Equal(user.CreatedAt, info.LastLogin)
}

func (s *ServiceSuite) TestLastLoginUnknownUser() {
	_, err := s.service.LastLogin(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}
