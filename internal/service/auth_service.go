package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/deadline-tracker/internal/auth"
	"github.com/spec-kit/deadline-tracker/internal/config"
	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/events"
	"github.com/spec-kit/deadline-tracker/internal/repository"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

// LoginResult is a freshly opened session and the token that names it.
type LoginResult struct {
	Session domain.Session
	Token   string
	User    domain.User
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	sessions   auth.SessionStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   auth.SessionStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL()),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		now:        time.Now,
	}
}

// RegisterUser creates a new account. The email must not be in use by anyone,
// compared exactly.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: user.Email}))
	return user, nil
}

// LoginUser verifies credentials and opens a session. Unknown emails and wrong
// passwords fail with the same error.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInternalError(err)
		}
		// same bcrypt work as the wrong-password path
		auth.VerifyPassword(s.dummy(), password)
		return nil, apperrors.NewInvalidCredentials()
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, apperrors.NewInvalidCredentials()
	}

	now := s.now().UTC()
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenMgr.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	token, err := s.tokenMgr.GenerateToken(session)
	if err != nil {
		_ = s.sessions.Destroy(ctx, session.ID)
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserLoggedIn, user.ID, nil))
	return &LoginResult{Session: session, Token: token, User: *user}, nil
}

// Logout ends the session named by token. Unknown or malformed tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sessionID, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// CurrentUser loads the account behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// the account vanished from the store underneath a live session
			return nil, apperrors.NewUnauthorized("session user no longer exists")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Sessions exposes the session store for middleware usage.
func (s *AuthService) Sessions() auth.SessionStore {
	return s.sessions
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword(uuid.NewString(), s.bcryptCost)
	})
	return s.dummyHash
}
