package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	repo "github.com/okisetiawan/go-product-catalog/internal/domain/repository"
	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
	"github.com/okisetiawan/go-product-catalog/pkg/mailer"
)

var (
	// ErrInvalidCredentials is deliberately shared by "no such user" and
	// "wrong password" so login responses carry no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("forbidden")
)

// AuthService owns signup, login and role checks. Tokens are stateless; the
// only server-side state it touches is the credential store.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	EmailPub    *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, emailPub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, EmailPub: emailPub, Logger: logger, MailEnabled: mailEnabled}
}

type UserInfo struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  entity.Role `json:"role"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// Signup hashes the password and creates the user. It returns the new user
// id only: no token and never the hash. Logging in is a separate step.
func (s *AuthService) Signup(ctx context.Context, email, password, roleStr string) (string, error) {
	role, ok := entity.ParseRole(roleStr)
	if !ok {
		return "", ErrInvalidRole
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{Email: email, PasswordHash: hash, Role: role}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	if s.EmailPub != nil && s.MailEnabled {
		if err := s.EmailPub.PublishJSON(ctx, mailer.WelcomeEmail(u.Email)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
		}
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user created")
	}
	return u.ID, nil
}

// Login verifies credentials and issues a bearer token. Lookup and hash
// failures collapse into the same error on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		User:      UserInfo{ID: u.ID, Email: u.Email, Role: u.Role},
	}, nil
}

// Authorize re-fetches the live user record and compares its role to the
// required one. The role inside a token is never trusted here: a downgrade
// in the store takes effect before the token expires.
func (s *AuthService) Authorize(ctx context.Context, userID string, required entity.Role) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrForbidden
	}
	if u.Role != required {
		return ErrForbidden
	}
	return nil
}

// GetUser loads a user for profile-style reads.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
