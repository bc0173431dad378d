package service

import (
	"context"
	"testing"
	"time"

	"sales-api/internal/domain"
	"sales-api/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key"

// bcrypt dominates the runtime of the credential properties
func credentialParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 20
	return params
}

// Feature: sales-api, Property 1: Registration stores bcrypt hashes
func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	properties := gopter.NewProperties(credentialParameters())

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(email string, password string, name string, lastName string) bool {
			store := memory.NewStore()
			service := NewUserService(store.Users(), testSecret, time.Hour)
			ctx := context.Background()

			user, err := service.Register(ctx, NewUserInput{Name: name, LastName: lastName, Email: email, Password: password})
			if err != nil {
				t.Logf("FAIL: Registration failed: %v", err)
				return false
			}

			if user.PasswordHash == password {
				t.Logf("FAIL: Password stored as plaintext for email %s", email)
				return false
			}

			cost, err := bcrypt.Cost([]byte(user.PasswordHash))
			if err != nil || cost != BcryptCost {
				t.Logf("FAIL: Unexpected bcrypt cost %d: %v", cost, err)
				return false
			}

			stored, err := store.Users().FindByEmail(ctx, email)
			if err != nil {
				t.Logf("FAIL: Could not find stored user: %v", err)
				return false
			}

			return bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)) == nil
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: sales-api, Property 2: Authenticate issues a token that verifies to the same identity
func TestProperty_AuthenticateRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(credentialParameters())

	properties.Property("token claims match the registered user", prop.ForAll(
		func(email string, password string, name string, lastName string) bool {
			store := memory.NewStore()
			service := NewUserService(store.Users(), testSecret, time.Hour)
			ctx := context.Background()

			user, err := service.Register(ctx, NewUserInput{Name: name, LastName: lastName, Email: email, Password: password})
			if err != nil {
				t.Logf("FAIL: Registration failed: %v", err)
				return false
			}

			token, err := service.Authenticate(ctx, email, password)
			if err != nil {
				t.Logf("FAIL: Authenticate failed: %v", err)
				return false
			}

			identity, err := service.VerifyToken(token)
			if err != nil {
				t.Logf("FAIL: Token validation failed: %v", err)
				return false
			}

			if *identity != user.Identity() {
				t.Logf("FAIL: Identity mismatch. Expected %+v, got %+v", user.Identity(), *identity)
				return false
			}

			_, err = service.Authenticate(ctx, email, password+"x")
			return err == domain.ErrInvalidCredentials
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service := NewUserService(memory.NewStore().Users(), testSecret, time.Hour)
	ctx := context.Background()

	input := NewUserInput{Name: "Ana", LastName: "Ruiz", Email: "ana@example.com", Password: "secret123"}
	_, err := service.Register(ctx, input)
	require.NoError(t, err)

	_, err = service.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Equal(t, domain.KindDuplicateEmail, domain.KindOf(err))
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	service := NewUserService(memory.NewStore().Users(), testSecret, time.Hour)

	_, err := service.Authenticate(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestVerifyToken_Rejects(t *testing.T) {
	service := NewUserService(memory.NewStore().Users(), testSecret, time.Hour)

	sign := func(secret string, claims jwt.Claims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}
	claims := func(expiresAt time.Time) *Claims {
		return &Claims{
			UserID: "6523f1c2a1b2c3d4e5f60718",
			Email:  "ana@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		}
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign("other-secret", claims(time.Now().Add(time.Hour)))},
		{"expired", sign(testSecret, claims(time.Now().Add(-time.Minute)))},
		{"missing expiry", sign(testSecret, &Claims{UserID: "6523f1c2a1b2c3d4e5f60718"})},
		{"missing id", sign(testSecret, &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := service.VerifyToken(tt.token)
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestVerifyToken_AcceptsOwnTokens(t *testing.T) {
	service := NewUserService(memory.NewStore().Users(), testSecret, 0)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   "6523f1c2a1b2c3d4e5f60718",
		Name:     "Ana",
		LastName: "Ruiz",
		Email:    "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(DefaultTokenExpiration)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	identity, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{
		ID:       "6523f1c2a1b2c3d4e5f60718",
		Name:     "Ana",
		LastName: "Ruiz",
		Email:    "ana@example.com",
	}, *identity)
}

func TestGetUserByID(t *testing.T) {
	service := NewUserService(memory.NewStore().Users(), testSecret, time.Hour)
	ctx := context.Background()

	user, err := service.Register(ctx, NewUserInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	found, err := service.GetUserByID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = service.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
