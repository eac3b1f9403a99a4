package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teamup-dev/teamup/internal/auth"
	"github.com/teamup-dev/teamup/internal/models"
	"github.com/teamup-dev/teamup/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrInvalidRole         = errors.New("role must be student, mentor, customer, or admin")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// TokenPair carries the issued access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService issues and validates credentials.
type AuthService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput represents the data required for a new account
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Skills   []string
	Bio      string
}

func (s *AuthService) Register(input RegisterInput) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         input.Name,
		Role:         role,
		Skills:       input.Skills,
		Bio:          input.Bio,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user.ID)
}

func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user.ID)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	userID, err := auth.VerifyToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.issueTokens(userID)
}

func (s *AuthService) issueTokens(userID uint) (*TokenPair, error) {
	accessToken, err := auth.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := auth.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
