package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"gopherpost/internal/model"
	"gopherpost/internal/pkg/jwtutil"
	"gopherpost/internal/pkg/passhash"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrTooManyAttempts   = errors.New("too many login attempts")
	ErrUnauthenticated   = errors.New("authentication required")
)

// UserStore is the slice of the user repository the auth service depends on.
type UserStore interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

// LoginLimiter bounds login attempts per email within a window.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	userStore     UserStore
	loginLimiter  LoginLimiter
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userStore UserStore, loginLimiter LoginLimiter, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	if jwtExpiration <= 0 {
		jwtExpiration = 30 * time.Minute
	}
	return &AuthService{
		userStore:     userStore,
		loginLimiter:  loginLimiter,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	existing, err := s.userStore.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := passhash.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userStore.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	if s.loginLimiter != nil {
		// Limiter errors are ignored: a broken redis must not lock out logins.
		if allowed, err := s.loginLimiter.Allow(ctx, email); err == nil && !allowed {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.userStore.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if !passhash.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// ResolveToken maps a bearer token to a persisted user. Every protected
// request passes through here. A bad signature, an expired token, a missing
// subject and a subject that no longer exists all collapse into the same
// ErrUnauthenticated so callers cannot probe which of them happened.
func (s *AuthService) ResolveToken(token string) (*model.User, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userStore.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userStore.GetByID(id)
}
