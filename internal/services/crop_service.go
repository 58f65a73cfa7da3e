package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/krishisethu/backend/internal/models"
	"github.com/krishisethu/backend/internal/repositories"
	"go.uber.org/zap"
)

// CropRepository is the interface that wraps methods for Crop table data access
type CropRepository interface {
	// Method Create inserts a new crop owned by crop.UserID.
	Create(ctx context.Context, crop *models.Crop) error
	// Method GetByID retrieves a crop by ID, owner included.
	//
	// If such crop does not exist, the error will wrap repositories.ErrNotFound.
	GetByID(ctx context.Context, cropID int) (*models.Crop, error)
	// Method ListByUserID retrieves all crops of a user in insertion order.
	ListByUserID(ctx context.Context, userID int) ([]*models.Crop, error)
	// Method GetLatestByUserID retrieves the most recently added crop of a user,
	// or (nil, nil) when the user has none.
	GetLatestByUserID(ctx context.Context, userID int) (*models.Crop, error)
	// Method Update writes the mutable fields of a crop.
	Update(ctx context.Context, crop *models.Crop) error
	// Method Delete removes a crop by ID.
	//
	// If such crop does not exist, the error will wrap repositories.ErrNotFound.
	Delete(ctx context.Context, cropID int) error
}

// cropService implements the ownership-scoped crop business logic
type cropService struct {
	cropRepo CropRepository
	logger   *zap.Logger
}

// NewCropService creates a new crop service
func NewCropService(cropRepo CropRepository, logger *zap.Logger) *cropService {
	return &cropService{
		cropRepo: cropRepo,
		logger:   logger,
	}
}

// Create validates the request and persists a crop owned by userID
func (s *cropService) Create(ctx context.Context, userID int, req *models.CreateCropRequest) (*models.Crop, error) {
	cropName := strings.TrimSpace(req.CropName)
	cropType := strings.TrimSpace(req.CropType)
	season := strings.TrimSpace(req.Season)

	if cropName == "" || cropType == "" || season == "" {
		return nil, fmt.Errorf("%w: cropName, cropType and season are required", ErrValidation)
	}

	crop := &models.Crop{
		UserID:   userID,
		CropName: cropName,
		CropType: cropType,
		Season:   season,
	}

	if err := s.cropRepo.Create(ctx, crop); err != nil {
		return nil, err
	}

	return crop, nil
}

// List returns all crops owned by userID; no crops yields an empty slice
func (s *cropService) List(ctx context.Context, userID int) ([]*models.Crop, error) {
	return s.cropRepo.ListByUserID(ctx, userID)
}

// Get returns a single crop after the ownership check.
// A crop owned by someone else yields ErrForbidden before anything about the
// record is disclosed; a missing crop yields ErrCropNotFound.
func (s *cropService) Get(ctx context.Context, userID, cropID int) (*models.Crop, error) {
	return s.getOwned(ctx, userID, cropID)
}

// Update applies a partial update to an owned crop and returns the stored record
func (s *cropService) Update(ctx context.Context, userID, cropID int, req *models.UpdateCropRequest) (*models.Crop, error) {
	crop, err := s.getOwned(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	if req.CropName != nil {
		if strings.TrimSpace(*req.CropName) == "" {
			return nil, fmt.Errorf("%w: cropName cannot be empty", ErrValidation)
		}
		crop.CropName = strings.TrimSpace(*req.CropName)
	}
	if req.CropType != nil {
		if strings.TrimSpace(*req.CropType) == "" {
			return nil, fmt.Errorf("%w: cropType cannot be empty", ErrValidation)
		}
		crop.CropType = strings.TrimSpace(*req.CropType)
	}
	if req.Season != nil {
		if strings.TrimSpace(*req.Season) == "" {
			return nil, fmt.Errorf("%w: season cannot be empty", ErrValidation)
		}
		crop.Season = strings.TrimSpace(*req.Season)
	}

	if err := s.cropRepo.Update(ctx, crop); err != nil {
		return nil, err
	}

	// Re-read to pick up updated_at and to detect a row deleted between the
	// ownership check and the update
	updated, err := s.cropRepo.GetByID(ctx, crop.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Delete removes an owned crop and returns the deleted record
func (s *cropService) Delete(ctx context.Context, userID, cropID int) (*models.Crop, error) {
	crop, err := s.getOwned(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	if err := s.cropRepo.Delete(ctx, cropID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}

	return crop, nil
}

// Current returns the most recently added crop of the caller, or nil when the
// caller has no crops. This is append-order, not last-updated order: deleting
// the newest crop makes the previous one current again.
func (s *cropService) Current(ctx context.Context, userID int) (*models.Crop, error) {
	return s.cropRepo.GetLatestByUserID(ctx, userID)
}

// getOwned fetches a crop and enforces the ownership gate
func (s *cropService) getOwned(ctx context.Context, userID, cropID int) (*models.Crop, error) {
	crop, err := s.cropRepo.GetByID(ctx, cropID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}

	if crop.UserID != userID {
		s.logger.Warn("crop access denied",
			zap.Int("cropId", cropID),
			zap.Int("ownerId", crop.UserID),
			zap.Int("callerId", userID),
		)
		return nil, ErrForbidden
	}

	return crop, nil
}
