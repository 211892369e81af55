package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yx043749/beaver-farm/internal/dependencies/clock"
	"github.com/yx043749/beaver-farm/internal/metrics"
	"github.com/yx043749/beaver-farm/internal/model"
	"github.com/yx043749/beaver-farm/internal/storage"
	"github.com/yx043749/beaver-farm/internal/validation"
)

// Session is the result of a successful login
type Session struct {
	Token     string
	Username  string
	MaxHabits int
	ExpiresAt time.Time
}

// LoginInfo reports when a user last logged in
type LoginInfo struct {
	LastLogin time.Time
	CreatedAt time.Time
}

// Credentials are the username and password submitted at registration
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Password string `json:"password" validate:"required,min=6"`
}

// Config holds configuration for the auth service
type Config struct {
	Secret     string
	TokenTTL   time.Duration
	IdleDays   int
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL:   30 * 24 * time.Hour,
		IdleDays:   30,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Service handles registration, login and bearer token validation.
// Tokens are stateless HS256 JWTs; on top of the token's own expiry a user
// idle for more than IdleDays since their last login is rejected.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	if cfg.IdleDays == 0 {
		cfg.IdleDays = defaults.IdleDays
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// Register creates a new user account. It does not log the user in.
func (s *Service) Register(ctx context.Context, username, password string) (*model.UserRecord, error) {
	creds := Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.NewUserRecord(creds.Username, string(hash), s.clock.Now())
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	metrics.Registrations.Inc()
	s.logger.Info("user registered", slog.String("username", user.Username))
	return user, nil
}

// Login checks a password and issues a bearer token
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validation.NewError("username", "and password are required")
	}

	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.Logins.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, model.ErrInvalidCredentials
	}

	now := s.clock.Now()
	if idle := clock.WholeDaysBetween(user.LastLogin, now); idle > s.cfg.IdleDays {
		s.logger.Info("returning after idle period",
			slog.String("username", username),
			slog.Int("idle_days", idle))
	}

	user.LastLogin = now
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issueToken(username, now)
	if err != nil {
		return nil, err
	}

	metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()
	return &Session{
		Token:     token,
		Username:  username,
		MaxHabits: user.MaxHabits,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken verifies a bearer token and the user's idle window,
// returning the username it was issued for
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", model.ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token expired", model.ErrSessionExpired)
		}
		return "", fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	username := claims.Subject
	if username == "" {
		return "", fmt.Errorf("%w: missing subject", model.ErrInvalidToken)
	}

	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", fmt.Errorf("%w: unknown user", model.ErrInvalidToken)
		}
		return "", err
	}

	if clock.WholeDaysBetween(user.LastLogin, s.clock.Now()) > s.cfg.IdleDays {
		return "", fmt.Errorf("%w: idle for more than %d days", model.ErrSessionExpired, s.cfg.IdleDays)
	}

	return username, nil
}

// AutoLogin refreshes the last login time for an already authenticated user
func (s *Service) AutoLogin(ctx context.Context, username string) (*model.UserRecord, error) {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	user.LastLogin = s.clock.Now()
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout records the logout time. Issued tokens stay valid until they expire.
func (s *Service) Logout(ctx context.Context, username string) error {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	user.LastLogout = &now
	return s.storage.SaveUser(ctx, user)
}

// LastLogin returns login timestamps for a user
func (s *Service) LastLogin(ctx context.Context, username string) (*LoginInfo, error) {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	last := user.LastLogin
	if last.IsZero() {
		last = user.CreatedAt
	}
	return &LoginInfo{LastLogin: last, CreatedAt: user.CreatedAt}, nil
}

func (s *Service) issueToken(username string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}
