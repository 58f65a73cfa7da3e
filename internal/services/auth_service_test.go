package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/krishisethu/backend/internal/auth/service"
	"github.com/krishisethu/backend/internal/models"
	"github.com/krishisethu/backend/internal/repositories"
)

// mockUserRepository is a hand-rolled UserRepository backed by maps
type mockUserRepository struct {
	usersByPhone map[string]*models.User
	usersByID    map[int]*models.User
	nextID       int
	createErr    error
	existsErr    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByPhone: make(map[string]*models.User),
		usersByID:    make(map[int]*models.User),
		nextID:       1,
	}
}

func (m *mockUserRepository) Create(_ context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = m.nextID
	m.nextID++
	m.usersByPhone[user.PhoneNumber] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByPhoneNumber(_ context.Context, phoneNumber string) (*models.User, error) {
	user, ok := m.usersByPhone[phoneNumber]
	if !ok {
		return nil, fmt.Errorf("user with phone number %s: %w", phoneNumber, repositories.ErrNotFound)
	}
	return user, nil
}

func (m *mockUserRepository) GetByID(_ context.Context, userID int) (*models.User, error) {
	user, ok := m.usersByID[userID]
	if !ok {
		return nil, fmt.Errorf("user with id %d: %w", userID, repositories.ErrNotFound)
	}
	return user, nil
}

func (m *mockUserRepository) ExistsByPhoneNumber(_ context.Context, phoneNumber string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.usersByPhone[phoneNumber]
	return ok, nil
}

// mockUserTokenRepository keeps at most one refresh token per user
type mockUserTokenRepository struct {
	tokens    map[int]string
	upsertErr error
}

func newMockUserTokenRepository() *mockUserTokenRepository {
	return &mockUserTokenRepository{tokens: make(map[int]string)}
}

func (m *mockUserTokenRepository) Upsert(_ context.Context, userID int, token string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.tokens[userID] = token
	return nil
}

func (m *mockUserTokenRepository) Replace(_ context.Context, userID int, oldToken, newToken string) error {
	if m.tokens[userID] != oldToken {
		return fmt.Errorf("refresh token for user %d: %w", userID, repositories.ErrTokenMismatch)
	}
	m.tokens[userID] = newToken
	return nil
}

func (m *mockUserTokenRepository) DeleteByUserID(_ context.Context, userID int) error {
	delete(m.tokens, userID)
	return nil
}

func newTestAuthService(userRepo *mockUserRepository, tokenRepo *mockUserTokenRepository) *authService {
	tg := service.NewTokenGenerator("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(userRepo, tokenRepo, tg, zap.NewNop())
}

func validSignupRequest() *models.SignupRequest {
	return &models.SignupRequest{
		PhoneNumber: "9447012345",
		Password:    "secret123",
		Name:        "Ravi Menon",
		Role:        models.RoleFarmer,
		Location: models.Location{
			District: "Thrissur",
			Village:  "Ollur",
		},
	}
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userRepo := newMockUserRepository()
		svc := newTestAuthService(userRepo, newMockUserTokenRepository())

		user, err := svc.Signup(context.Background(), validSignupRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "9447012345", user.PhoneNumber)
		assert.Equal(t, models.RoleFarmer, user.Role)
		assert.Equal(t, models.LanguageMalayalam, user.PreferredLanguage)

		// Password must be stored hashed, not in clear
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	})

	t.Run("defaults role to farmer", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

		req := validSignupRequest()
		req.Role = ""
		user, err := svc.Signup(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, models.RoleFarmer, user.Role)
	})

	t.Run("accepts +91 prefixed phone number", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

		req := validSignupRequest()
		req.PhoneNumber = "+919447012345"
		user, err := svc.Signup(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "+919447012345", user.PhoneNumber)
	})

	t.Run("duplicate phone number", func(t *testing.T) {
		userRepo := newMockUserRepository()
		svc := newTestAuthService(userRepo, newMockUserTokenRepository())

		_, err := svc.Signup(context.Background(), validSignupRequest())
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), validSignupRequest())
		assert.ErrorIs(t, err, ErrPhoneNumberExists)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(req *models.SignupRequest)
		}{
			{
				name:   "invalid phone number",
				mutate: func(req *models.SignupRequest) { req.PhoneNumber = "12345" },
			},
			{
				name:   "phone number starting below 6",
				mutate: func(req *models.SignupRequest) { req.PhoneNumber = "5447012345" },
			},
			{
				name:   "short password",
				mutate: func(req *models.SignupRequest) { req.Password = "abc" },
			},
			{
				name:   "missing name",
				mutate: func(req *models.SignupRequest) { req.Name = "   " },
			},
			{
				name:   "missing district",
				mutate: func(req *models.SignupRequest) { req.Location.District = "" },
			},
			{
				name:   "missing village",
				mutate: func(req *models.SignupRequest) { req.Location.Village = "" },
			},
			{
				name:   "admin role rejected",
				mutate: func(req *models.SignupRequest) { req.Role = models.RoleAdmin },
			},
			{
				name:   "unknown role rejected",
				mutate: func(req *models.SignupRequest) { req.Role = "minister" },
			},
			{
				name:   "unsupported language",
				mutate: func(req *models.SignupRequest) { req.PreferredLanguage = "fr" },
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

				req := validSignupRequest()
				tt.mutate(req)

				_, err := svc.Signup(context.Background(), req)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})

	t.Run("repository failure is not a validation error", func(t *testing.T) {
		userRepo := newMockUserRepository()
		userRepo.existsErr = errors.New("connection refused")
		svc := newTestAuthService(userRepo, newMockUserTokenRepository())

		_, err := svc.Signup(context.Background(), validSignupRequest())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	signup := func(t *testing.T, svc *authService) *models.User {
		t.Helper()
		user, err := svc.Signup(context.Background(), validSignupRequest())
		require.NoError(t, err)
		return user
	}

	t.Run("success stores the refresh token", func(t *testing.T) {
		tokenRepo := newMockUserTokenRepository()
		svc := newTestAuthService(newMockUserRepository(), tokenRepo)
		created := signup(t, svc)

		user, accessToken, refreshToken, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "9447012345",
			Password:    "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, refreshToken, tokenRepo.tokens[user.ID])
	})

	t.Run("second login replaces the stored token", func(t *testing.T) {
		tokenRepo := newMockUserTokenRepository()
		svc := newTestAuthService(newMockUserRepository(), tokenRepo)
		created := signup(t, svc)

		req := &models.LoginRequest{PhoneNumber: "9447012345", Password: "secret123"}

		_, _, first, err := svc.Login(context.Background(), req)
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond) // new iat, distinct token
		_, _, second, err := svc.Login(context.Background(), req)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, second, tokenRepo.tokens[created.ID])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())
		signup(t, svc)

		_, _, _, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "9447012345",
			Password:    "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown phone number", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

		_, _, _, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "9447099999",
			Password:    "secret123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

		_, _, _, err := svc.Login(context.Background(), &models.LoginRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	login := func(t *testing.T, svc *authService) (int, string) {
		t.Helper()
		user, err := svc.Signup(context.Background(), validSignupRequest())
		require.NoError(t, err)
		_, _, refreshToken, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "9447012345",
			Password:    "secret123",
		})
		require.NoError(t, err)
		return user.ID, refreshToken
	}

	t.Run("rotates the stored token", func(t *testing.T) {
		tokenRepo := newMockUserTokenRepository()
		svc := newTestAuthService(newMockUserRepository(), tokenRepo)
		userID, refreshToken := login(t, svc)

		time.Sleep(1100 * time.Millisecond) // new iat, distinct token
		accessToken, newRefreshToken, err := svc.Refresh(context.Background(), refreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEqual(t, refreshToken, newRefreshToken)
		assert.Equal(t, newRefreshToken, tokenRepo.tokens[userID])
	})

	t.Run("replayed token is rejected", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())
		_, refreshToken := login(t, svc)

		time.Sleep(1100 * time.Millisecond)
		_, _, err := svc.Refresh(context.Background(), refreshToken)
		require.NoError(t, err)

		// The first rotation consumed the token
		_, _, err = svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("token cleared by logout is rejected", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())
		userID, refreshToken := login(t, svc)

		require.NoError(t, svc.Logout(context.Background(), userID))

		_, _, err := svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

		_, _, err := svc.Refresh(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty token", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

		_, _, err := svc.Refresh(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("access token cannot be used for refresh", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())
		_, err := svc.Signup(context.Background(), validSignupRequest())
		require.NoError(t, err)
		_, accessToken, _, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "9447012345",
			Password:    "secret123",
		})
		require.NoError(t, err)

		_, _, err = svc.Refresh(context.Background(), accessToken)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("token of a deleted user is rejected", func(t *testing.T) {
		userRepo := newMockUserRepository()
		svc := newTestAuthService(userRepo, newMockUserTokenRepository())
		userID, refreshToken := login(t, svc)

		delete(userRepo.usersByID, userID)

		_, _, err := svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		svc := newTestAuthService(newMockUserRepository(), newMockUserTokenRepository())

		require.NoError(t, svc.Logout(context.Background(), 42))
		require.NoError(t, svc.Logout(context.Background(), 42))
	})
}
