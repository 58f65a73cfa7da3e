package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/krishisethu/backend/internal/models"
	"go.uber.org/zap"
)

// cropRepository implements the crop data access layer.
// Every crop row carries its owner in user_id; "current crop" is the
// newest-inserted row of that owner, which preserves list-append order
// across deletes.
type cropRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCropRepository creates a new crop repository
func NewCropRepository(db *sql.DB, logger *zap.Logger) *cropRepository {
	return &cropRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new crop owned by crop.UserID
func (r *cropRepository) Create(ctx context.Context, crop *models.Crop) error {
	query := `
		INSERT INTO crops (user_id, crop_name, crop_type, season)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, crop.UserID, crop.CropName, crop.CropType, crop.Season)
	if err != nil {
		r.logger.Error("failed to create crop", zap.Error(err))
		return fmt.Errorf("failed to create crop: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	crop.ID = int(id)
	return nil
}

// GetByID retrieves a crop by ID, owner included
func (r *cropRepository) GetByID(ctx context.Context, cropID int) (*models.Crop, error) {
	query := `
		SELECT id, user_id, crop_name, crop_type, season, created_at, updated_at
		FROM crops
		WHERE id = ?
		LIMIT 1
	`

	crop := &models.Crop{}
	err := r.db.QueryRowContext(ctx, query, cropID).Scan(
		&crop.ID,
		&crop.UserID,
		&crop.CropName,
		&crop.CropType,
		&crop.Season,
		&crop.CreatedAt,
		&crop.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("crop %d: %w", cropID, ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get crop by id", zap.Error(err), zap.Int("cropId", cropID))
		return nil, fmt.Errorf("failed to get crop by id: %w", err)
	}

	return crop, nil
}

// ListByUserID retrieves all crops of a user in insertion order
func (r *cropRepository) ListByUserID(ctx context.Context, userID int) ([]*models.Crop, error) {
	query := `
		SELECT id, user_id, crop_name, crop_type, season, created_at, updated_at
		FROM crops
		WHERE user_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list crops", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	defer rows.Close()

	crops := make([]*models.Crop, 0)
	for rows.Next() {
		crop := &models.Crop{}
		if err := rows.Scan(
			&crop.ID,
			&crop.UserID,
			&crop.CropName,
			&crop.CropType,
			&crop.Season,
			&crop.CreatedAt,
			&crop.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan crop: %w", err)
		}
		crops = append(crops, crop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crops: %w", err)
	}

	return crops, nil
}

// GetLatestByUserID retrieves the most recently added crop of a user.
// Returns (nil, nil) when the user has no crops.
func (r *cropRepository) GetLatestByUserID(ctx context.Context, userID int) (*models.Crop, error) {
	query := `
		SELECT id, user_id, crop_name, crop_type, season, created_at, updated_at
		FROM crops
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT 1
	`

	crop := &models.Crop{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&crop.ID,
		&crop.UserID,
		&crop.CropName,
		&crop.CropType,
		&crop.Season,
		&crop.CreatedAt,
		&crop.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get latest crop", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get latest crop: %w", err)
	}

	return crop, nil
}

// Update writes the mutable fields of a crop
func (r *cropRepository) Update(ctx context.Context, crop *models.Crop) error {
	query := `
		UPDATE crops
		SET crop_name = ?, crop_type = ?, season = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, crop.CropName, crop.CropType, crop.Season, crop.ID); err != nil {
		r.logger.Error("failed to update crop", zap.Error(err), zap.Int("cropId", crop.ID))
		return fmt.Errorf("failed to update crop: %w", err)
	}

	return nil
}

// Delete removes a crop by ID
func (r *cropRepository) Delete(ctx context.Context, cropID int) error {
	query := `DELETE FROM crops WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, cropID)
	if err != nil {
		r.logger.Error("failed to delete crop", zap.Error(err), zap.Int("cropId", cropID))
		return fmt.Errorf("failed to delete crop: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("crop %d: %w", cropID, ErrNotFound)
	}

	return nil
}
