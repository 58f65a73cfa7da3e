package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authmiddleware "github.com/krishisethu/backend/internal/auth/middleware"
	"github.com/krishisethu/backend/internal/models"
	"go.uber.org/zap"
)

// CropService is the interface that wraps methods for crop business logic.
type CropService interface {
	// Method Create validates the request and persists a crop owned by userID.
	Create(ctx context.Context, userID int, req *models.CreateCropRequest) (*models.Crop, error)
	// Method List returns all crops owned by userID in insertion order.
	List(ctx context.Context, userID int) ([]*models.Crop, error)
	// Method Get returns a single owned crop.
	//
	// A crop owned by someone else yields a forbidden error; a missing crop a
	// not-found error.
	Get(ctx context.Context, userID, cropID int) (*models.Crop, error)
	// Method Update applies a partial update to an owned crop.
	Update(ctx context.Context, userID, cropID int, req *models.UpdateCropRequest) (*models.Crop, error)
	// Method Delete removes an owned crop and returns the deleted record.
	Delete(ctx context.Context, userID, cropID int) (*models.Crop, error)
	// Method Current returns the most recently added crop, or nil when the
	// caller has none.
	Current(ctx context.Context, userID int) (*models.Crop, error)
}

// CropHandler handles crop-related HTTP requests
type CropHandler struct {
	BaseHandler
	cropService CropService
}

// NewCropHandler creates a new crop handler
func NewCropHandler(cropService CropService, logger *zap.Logger) *CropHandler {
	return &CropHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cropService: cropService,
	}
}

// RegisterRoutes registers all crop handler routes behind the access-token gate
// Note: This assumes the router is already scoped to /api
func (h *CropHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/crops", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/current", h.Current)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// cropResponse is the response envelope for single-crop operations
type cropResponse struct {
	Message string       `json:"message"`
	Crop    *models.Crop `json:"crop"`
}

// Create handles POST /crops
// @Summary Create a crop
// @Description Create a crop record owned by the authenticated user.
// @Tags crops
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCropRequest true "Crop fields"
// @Success 201 {object} cropResponse "Crop created"
// @Failure 400 {object} map[string]string "Missing required fields"
// @Failure 401 {object} map[string]string "Missing or invalid access token"
// @Router /crops [post]
func (h *CropHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateCropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	crop, err := h.cropService.Create(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Warn("failed to create crop", zap.Error(err), zap.Int("userId", userID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, cropResponse{
		Message: "crop created successfully",
		Crop:    crop,
	})
}

// List handles GET /crops
// @Summary List crops
// @Description List all crops owned by the authenticated user.
// @Tags crops
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]any "Crops of the caller"
// @Failure 401 {object} map[string]string "Missing or invalid access token"
// @Router /crops [get]
func (h *CropHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	crops, err := h.cropService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list crops", zap.Error(err), zap.Int("userId", userID))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "crops fetched successfully",
		"crops":   crops,
	})
}

// Current handles GET /crops/current
// @Summary Get current crop
// @Description Return the most recently added crop of the authenticated user, or null when there are none.
// @Tags crops
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} cropResponse "Current crop or null"
// @Failure 401 {object} map[string]string "Missing or invalid access token"
// @Router /crops/current [get]
func (h *CropHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	crop, err := h.cropService.Current(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get current crop", zap.Error(err), zap.Int("userId", userID))
		h.RespondServiceError(w, err)
		return
	}

	message := "current crop fetched successfully"
	if crop == nil {
		message = "no crops found"
	}

	h.RespondJSON(w, http.StatusOK, cropResponse{
		Message: message,
		Crop:    crop,
	})
}

// Get handles GET /crops/{id}
// @Summary Get a crop
// @Description Return a single crop owned by the authenticated user.
// @Tags crops
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Crop ID"
// @Success 200 {object} cropResponse "Crop fetched"
// @Failure 403 {object} map[string]string "Crop owned by another user"
// @Failure 404 {object} map[string]string "Crop not found"
// @Router /crops/{id} [get]
func (h *CropHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, cropID, ok := h.callerAndCropID(w, r)
	if !ok {
		return
	}

	crop, err := h.cropService.Get(r.Context(), userID, cropID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, cropResponse{
		Message: "crop fetched successfully",
		Crop:    crop,
	})
}

// Update handles PUT /crops/{id}
// @Summary Update a crop
// @Description Apply a partial update to a crop owned by the authenticated user.
// @Tags crops
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Crop ID"
// @Param request body models.UpdateCropRequest true "Fields to update"
// @Success 200 {object} cropResponse "Crop updated"
// @Failure 403 {object} map[string]string "Crop owned by another user"
// @Failure 404 {object} map[string]string "Crop not found"
// @Router /crops/{id} [put]
func (h *CropHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, cropID, ok := h.callerAndCropID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	crop, err := h.cropService.Update(r.Context(), userID, cropID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, cropResponse{
		Message: "crop updated successfully",
		Crop:    crop,
	})
}

// Delete handles DELETE /crops/{id}
// @Summary Delete a crop
// @Description Delete a crop owned by the authenticated user and return the deleted record.
// @Tags crops
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Crop ID"
// @Success 200 {object} cropResponse "Crop deleted"
// @Failure 403 {object} map[string]string "Crop owned by another user"
// @Failure 404 {object} map[string]string "Crop not found"
// @Router /crops/{id} [delete]
func (h *CropHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, cropID, ok := h.callerAndCropID(w, r)
	if !ok {
		return
	}

	crop, err := h.cropService.Delete(r.Context(), userID, cropID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, cropResponse{
		Message: "crop deleted successfully",
		Crop:    crop,
	})
}

// callerAndCropID extracts the authenticated user and the {id} route parameter,
// writing the error response itself when either is missing
func (h *CropHandler) callerAndCropID(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, ok := authmiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return 0, 0, false
	}

	cropID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid crop id")
		return 0, 0, false
	}

	return userID, cropID, true
}
