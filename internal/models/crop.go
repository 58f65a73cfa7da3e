package models

import "time"

// Crop represents a crop record owned by a single user
type Crop struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"` // Owner, never serialized
	CropName  string    `json:"cropName"`
	CropType  string    `json:"cropType"`
	Season    string    `json:"season"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCropRequest represents a request to create a crop
type CreateCropRequest struct {
	CropName string `json:"cropName"`
	CropType string `json:"cropType"`
	Season   string `json:"season"`
}

// UpdateCropRequest represents a partial update to a crop
type UpdateCropRequest struct {
	CropName *string `json:"cropName,omitempty"`
	CropType *string `json:"cropType,omitempty"`
	Season   *string `json:"season,omitempty"`
}
