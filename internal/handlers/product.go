// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/services"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if sellerID := c.Query("seller_id"); sellerID != "" {
		if parsed, err := uuid.Parse(sellerID); err == nil {
			params.SellerID = &parsed
		}
	}
	if c.Query("in_stock") == "true" {
		inStock := true
		params.InStock = &inStock
	}

	result, err := h.productService.SearchProducts(&params, optionalUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := services.ProductView{Product: *product, IsOwn: product.OwnedBy(optionalUserID(c))}
	utils.SuccessResponse(c, gin.H{"product": view})
}

// GET /products/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.Categories()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.CreateProduct(sellerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(sellerID, productID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(sellerID, productID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /products/image uploads a product image and returns its URL.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if _, ok := currentUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "image"), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.ProductImageOptions())
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"upload": result})
}
