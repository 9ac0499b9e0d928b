// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	FirstName string       `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  string       `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Contact   string       `json:"contact,omitempty" validate:"omitempty,ph_mobile"`
	Address   models.JSONB `json:"address,omitempty"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Contact != "" {
		updates["contact"] = req.Contact
	}
	if req.Address != nil {
		updates["address"] = req.Address
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetProfile(userID)
}

// SavedAddress returns the delivery prefill built from the user's profile.
func (s *UserService) SavedAddress(userID uuid.UUID) (*models.DeliveryDetails, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	prefill := user.SavedAddress()
	return &prefill, nil
}

// ProfileStats carries the counters shown on the profile page.
type ProfileStats struct {
	ProductCount int64 `json:"product_count"`
}

// Stats counts the user's active listings.
func (s *UserService) Stats(userID uuid.UUID) (*ProfileStats, error) {
	var stats ProfileStats
	if err := s.db.Model(&models.Product{}).Where("seller_id = ?", userID).Count(&stats.ProductCount).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &stats, nil
}

// ListProducts returns the user's own product listings, newest first.
func (s *UserService) ListProducts(userID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("seller_id = ?", userID).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return products, nil
}
