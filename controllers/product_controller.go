package controllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
	"github.com/ihza6661/computer-store-rest-api-sub000/services"
)

// ProductHandler handles product CRUD operations
type ProductHandler struct {
	products  *services.ProductService
	validator *RequestValidator
	timeout   time.Duration
}

func NewProductHandler(products *services.ProductService, validator *RequestValidator) *ProductHandler {
	return &ProductHandler{
		products:  products,
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

// List retrieves paginated products with optional category and search filters.
func (h *ProductHandler) List(c *gin.Context) {
	page, perPage, err := h.validator.ParsePagination(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	params := repository.ProductListParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
	}
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid category ID format"})
			return
		}
		params.CategoryID = &categoryID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	products, total, err := h.products.ListProducts(ctx, params)
	if err != nil {
		zap.L().Error("Error finding products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":       page,
			"perPage":    perPage,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// Get retrieves a single product by ID.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Error fetching product", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// Create creates a product from a multipart form with optional images.
func (h *ProductHandler) Create(c *gin.Context) {
	req, images, err := h.validator.ParseCreateProductRequest(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	product, err := h.products.CreateProduct(ctx, req, images)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Category not found"})
		case errors.Is(err, services.ErrSKUExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Error creating product", zap.String("sku", req.SKU), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	zap.L().Info("Product created", zap.String("id", product.ID.String()), zap.String("sku", product.SKU))
	c.JSON(http.StatusCreated, product)
}

// Update applies partial changes to a product.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	req, err := h.validator.ParseUpdateProductRequest(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	product, err := h.products.UpdateProduct(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Category not found"})
		default:
			zap.L().Error("Error updating product", zap.String("id", id.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete soft-deletes a product.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Error deleting product", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		zap.L().Warn("Invalid UUID format", zap.String(name, raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return uuid.Nil, false
	}
	return id, true
}
