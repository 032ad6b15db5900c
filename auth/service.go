// Copyright 2025 The Linkstash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

// DefaultSessionTTL is how long issued sessions stay valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Service implements registration, login, and session resolution.
// Tokens are JWTs backed by a server-side session record, so logout
// actually revokes: a structurally valid token whose session record is
// gone or expired is treated as unauthenticated.
type Service struct {
	users      storage.UserRepository
	sessions   storage.SessionRepository
	secret     string
	sessionTTL time.Duration
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSessionTTL overrides the session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewService creates an auth service.
func NewService(users storage.UserRepository, sessions storage.SessionRepository, secret string, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}
	if sessions == nil {
		return nil, ErrSessionRepositoryRequired
	}
	if secret == "" {
		return nil, ErrSecretRequired
	}

	s := &Service{
		users:      users,
		sessions:   sessions,
		secret:     secret,
		sessionTTL: DefaultSessionTTL,
		logger:     slog.Default().With("component", "auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates a new user account.
func (s *Service) Register(ctx context.Context, email, name, password string) (*core.User, error) {
	email = strings.TrimSpace(email)

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &core.User{
		ID:           core.NewUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", "user", user.ID)
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *core.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID, s.sessionTTL, s.secret)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	session := &core.Session{
		TokenDigest: DigestToken(token),
		UserID:      user.ID,
		ExpiresAt:   now.Add(s.sessionTTL),
		CreatedAt:   now,
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", "user", user.ID)
	return token, user, nil
}

// Authenticate resolves a session token to its owner's user ID.
// Returns ErrUnauthenticated for any token that is malformed, forged,
// expired, or whose session record has been revoked.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	claims, err := ValidateToken(token, s.secret)
	if err != nil {
		return "", ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, DigestToken(token))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}

	if session.Expired(time.Now().UTC()) || session.UserID != claims.UserID {
		return "", ErrUnauthenticated
	}
	return session.UserID, nil
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, DigestToken(token))
}

// GetUser returns the account record for a user ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*core.User, error) {
	return s.users.GetByID(ctx, userID)
}
