// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	Category    string          `json:"category" validate:"required,max=100"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"min=0"`
	ImageURL    string          `json:"image,omitempty" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
	ImageURL    *string          `json:"image,omitempty" validate:"omitempty,url"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	SellerID *uuid.UUID `json:"seller_id,omitempty"`
	InStock  *bool      `json:"in_stock,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(sellerID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}
	if req.Price.IsNegative() || req.Price.IsZero() {
		return nil, fmt.Errorf("%w: price must be positive", models.ErrValidationFailed)
	}

	product := &models.Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Seller").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// ProductView is a catalog product annotated with whether the requesting
// user is its seller. The storefront hides the buy action on own listings.
type ProductView struct {
	models.Product
	IsOwn bool `json:"is_own"`
}

// SearchProducts lists the catalog with optional full-text search, category
// filter and pagination. viewerID may be uuid.Nil for anonymous browsing.
func (s *ProductService) SearchProducts(params *ProductSearchParams, viewerID uuid.UUID) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		search := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}
	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	query = query.Order(params.SortClause("created_at", "price", "name", "stock")).
		Scopes(params.Scope())

	var products []models.Product
	if err := query.Preload("Seller").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{Product: p, IsOwn: p.OwnedBy(viewerID)}
	}

	result := params.Result(views, total)
	return &result, nil
}

func (s *ProductService) UpdateProduct(sellerID, productID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}

	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if !product.OwnedBy(sellerID) {
		return nil, models.ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		if req.Price.IsNegative() || req.Price.IsZero() {
			return nil, fmt.Errorf("%w: price must be positive", models.ErrValidationFailed)
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(productID)
}

func (s *ProductService) DeleteProduct(sellerID, productID uuid.UUID) error {
	product, err := s.GetProduct(productID)
	if err != nil {
		return err
	}
	if !product.OwnedBy(sellerID) {
		return models.ErrForbidden
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Categories returns the distinct product categories in the catalog.
func (s *ProductService) Categories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.Product{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return categories, nil
}
