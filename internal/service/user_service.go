package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sales-api/internal/domain"
	"sales-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// DefaultTokenExpiration applies when no expiry is configured
	DefaultTokenExpiration = 24 * time.Hour
)

// UserService registers sellers and issues/validates their session tokens
type UserService interface {
	Register(ctx context.Context, input NewUserInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	VerifyToken(tokenString string) (*domain.Identity, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// Claims represents the JWT claims
type Claims struct {
	UserID   string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

type userService struct {
	userRepo        repository.UserRepository
	jwtSecret       string
	tokenExpiration time.Duration
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, jwtSecret string, tokenExpiration time.Duration) UserService {
	if tokenExpiration <= 0 {
		tokenExpiration = DefaultTokenExpiration
	}
	return &userService{
		userRepo:        userRepo,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
	}
}

// Register creates a new user account with hashed password
func (s *userService) Register(ctx context.Context, input NewUserInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, domain.ErrDuplicateEmail
	}

	// bcrypt generates a random salt per hash
	hashedPassword, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks the password and returns a signed session token
func (s *userService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", domain.ErrUnknownUser
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.verifyPassword(user.PasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// VerifyToken validates a JWT token and returns the identity it carries
func (s *userService) VerifyToken(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{
		ID:       claims.UserID,
		Name:     claims.Name,
		LastName: claims.LastName,
		Email:    claims.Email,
	}, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *userService) verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// generateToken signs the user's identity claims with HS256
func (s *userService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	identity := user.Identity()
	claims := &Claims{
		UserID:   identity.ID,
		Name:     identity.Name,
		LastName: identity.LastName,
		Email:    identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
