package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"gorm.io/gorm"
)

// AuthService handles registration, credential checks and token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   auth.TokenIssuer
	logger   zerolog.Logger

	// compared against when the username is unknown so that response time
	// does not reveal whether the account exists
	fallbackHash string
}

// NewAuthService creates a new AuthService. It fails if the hasher cannot
// produce the fallback hash used for unknown usernames.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	logger zerolog.Logger,
) (*AuthService, error) {
	fallbackHash, err := hasher.Hash("fallback-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare fallback hash: %w", err)
	}

	return &AuthService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger.With().Str("service", "auth").Logger(),
		fallbackHash: fallbackHash,
	}, nil
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := input.Username
	if strings.TrimSpace(username) == "" {
		return nil, newValidationError("username", "is required")
	}
	// usernames are matched exactly at login, so they are never rewritten
	if username != strings.TrimSpace(username) {
		return nil, newValidationError("username", "must not start or end with whitespace")
	}
	if len(username) > constants.MaxUsernameLength {
		return nil, newValidationError("username", fmt.Sprintf("must be at most %d characters", constants.MaxUsernameLength))
	}
	if input.Password == "" {
		return nil, newValidationError("password", "is required")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, newValidationError("password", "must be at most 72 bytes")
		}
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("registered user")
	return user, nil
}

// ValidateCredentials returns the user when the password matches. An unknown
// username and a wrong password both yield (nil, nil).
func (s *AuthService) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Verify(password, s.fallbackHash)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	return user, nil
}

// Login issues a session token for an already verified user.
func (s *AuthService) Login(user *models.User) (*auth.Token, error) {
	token, err := s.tokens.Issue(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Time("expires_at", token.ExpiresAt).
		Msg("issued token")
	return token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials and issues a token.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*auth.Token, error) {
	user, err := s.ValidateCredentials(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn().Msg("rejected login")
		return nil, ErrInvalidCredentials
	}

	return s.Login(user)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
