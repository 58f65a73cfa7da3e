package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/krishisethu/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements the user data access layer
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (phone_number, password_hash, name, role, preferred_language, district, village, latitude, longitude, land_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.PhoneNumber,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.PreferredLanguage,
		user.Location.District,
		user.Location.Village,
		user.Location.Latitude,
		user.Location.Longitude,
		user.LandSize,
	)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByPhoneNumber retrieves a user by phone number
func (r *userRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error) {
	query := `
		SELECT id, phone_number, password_hash, name, role, preferred_language, district, village, latitude, longitude, land_size
		FROM users
		WHERE phone_number = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, phoneNumber).Scan(
		&user.ID,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.PreferredLanguage,
		&user.Location.District,
		&user.Location.Village,
		&user.Location.Latitude,
		&user.Location.Longitude,
		&user.LandSize,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", phoneNumber, ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by phone number", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by phone number: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, phone_number, password_hash, name, role, preferred_language, district, village, latitude, longitude, land_size
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.PreferredLanguage,
		&user.Location.District,
		&user.Location.Village,
		&user.Location.Latitude,
		&user.Location.Longitude,
		&user.LandSize,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// ExistsByPhoneNumber checks if a user exists with the given phone number
func (r *userRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE phone_number = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, phoneNumber).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check phone number existence", zap.Error(err))
		return false, fmt.Errorf("failed to check phone number existence: %w", err)
	}

	return exists, nil
}
