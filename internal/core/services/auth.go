package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements registration, login and token validation
type authService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
) driving.AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
		tokenTTL:     24 * time.Hour,
	}
}

// Register creates a new account. Unknown roles default to seeker.
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userStore.GetByUsername(ctx, req.Username); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	role := req.Role
	if role != domain.RoleAdmin {
		role = domain.RoleSeeker
	}

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login validates credentials and creates a session
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.authAdapter.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	sessionID := uuid.NewString()
	claims := &domain.TokenClaims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SessionID: sessionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

// ValidateToken checks the token signature and the backing session
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if time.Unix(claims.ExpiresAt, 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	session, err := s.sessionStore.GetByToken(ctx, token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Logout removes the session backing a token
func (s *authService) Logout(ctx context.Context, token string) error {
	session, err := s.sessionStore.GetByToken(ctx, token)
	if err != nil {
		return nil // already gone
	}
	return s.sessionStore.Delete(ctx, session.ID)
}
