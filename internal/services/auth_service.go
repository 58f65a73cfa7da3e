package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/krishisethu/backend/internal/auth/service"
	"github.com/krishisethu/backend/internal/models"
	"github.com/krishisethu/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByPhoneNumber retrieves a user by phone number.
	//
	// If user with such phone number does not exist, the error will wrap repositories.ErrNotFound.
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, the error will wrap repositories.ErrNotFound.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByPhoneNumber checks if a user with such phone number exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
}

// UserTokenRepository is the interface that wraps methods for the per-user refresh token storage
type UserTokenRepository interface {
	// Method Upsert stores the refresh token for a user, replacing any previous one.
	Upsert(ctx context.Context, userID int, token string) error
	// Method Replace swaps the stored token for a new one only if it still equals oldToken.
	//
	// Returns an error wrapping repositories.ErrTokenMismatch when the stored
	// value differs, which is how a replayed or concurrently rotated token is detected.
	Replace(ctx context.Context, userID int, oldToken, newToken string) error
	// Method DeleteByUserID removes the stored refresh token of a user. Idempotent.
	DeleteByUserID(ctx context.Context, userID int) error
}

// authService implements the authentication business logic
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// phoneRegex validates an Indian mobile number: 10 digits, optional +91 prefix
var phoneRegex = regexp.MustCompile(`^(\+91)?[6-9][0-9]{9}$`)

// Signup validates the request, hashes the password and creates the user.
// The created user is returned without tokens; the client logs in afterwards.
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	phoneNumber := strings.TrimSpace(req.PhoneNumber)
	name := strings.TrimSpace(req.Name)

	if !phoneRegex.MatchString(phoneNumber) {
		return nil, fmt.Errorf("%w: valid phone number is required", ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Location.District) == "" || strings.TrimSpace(req.Location.Village) == "" {
		return nil, fmt.Errorf("%w: location district and village are required", ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleFarmer
	}
	// Admin accounts cannot be self-registered
	if !slices.Contains(models.SelfRegisterRoles, role) {
		return nil, fmt.Errorf("%w: role must be one of farmer, buyer, expert", ErrValidation)
	}

	language := req.PreferredLanguage
	if language == "" {
		language = models.LanguageMalayalam
	}
	if language != models.LanguageEnglish && language != models.LanguageMalayalam {
		return nil, fmt.Errorf("%w: preferred language must be en or ml", ErrValidation)
	}

	exists, err := s.userRepo.ExistsByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone number: %w", err)
	}
	if exists {
		return nil, ErrPhoneNumberExists
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		PhoneNumber:       phoneNumber,
		PasswordHash:      string(passwordHash),
		Name:              name,
		Role:              role,
		PreferredLanguage: language,
		Location: models.Location{
			District:  strings.TrimSpace(req.Location.District),
			Village:   strings.TrimSpace(req.Location.Village),
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		LandSize: req.LandSize,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and issues a fresh token pair.
// The new refresh token replaces whatever was stored before, so a user has
// at most one live session.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, string, error) {
	phoneNumber := strings.TrimSpace(req.PhoneNumber)
	if phoneNumber == "" || req.Password == "" {
		return nil, "", "", fmt.Errorf("%w: phone number and password are required", ErrValidation)
	}

	user, err := s.userRepo.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, string(user.Role), user.PhoneNumber)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userTokenRepo.Upsert(ctx, user.ID, refreshToken); err != nil {
		return nil, "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

// Logout clears the stored refresh token of the user. Calling it again when
// no token is stored succeeds as well.
func (s *authService) Logout(ctx context.Context, userID int) error {
	if err := s.userTokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// Refresh rotates a refresh token: the presented token must be a valid JWT
// and must equal the stored one. On success both tokens are reissued and the
// stored token is overwritten, so the presented token cannot be used twice.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	userID, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Debug("refresh token validation failed", zap.Error(err))
		return "", "", ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", ErrUnauthorized
		}
		return "", "", err
	}

	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, string(user.Role), user.PhoneNumber)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Conditional swap: only the rotation that still sees the presented token wins
	if err := s.userTokenRepo.Replace(ctx, user.ID, refreshToken, newRefreshToken); err != nil {
		if errors.Is(err, repositories.ErrTokenMismatch) {
			s.logger.Warn("stale refresh token presented", zap.Int("userId", user.ID))
			return "", "", ErrUnauthorized
		}
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}
