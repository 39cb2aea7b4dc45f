package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ihza6661/computer-store-rest-api-sub000/services"
)

// Validation constants
const (
	MaxPageSize   = 100
	MaxPageNumber = 1000000
	MaxUploadSize = 50 * 1024 * 1024 // 50MB
)

// Allowed file types
var (
	allowedSpreadsheetExtensions = map[string]bool{
		".csv":  true,
		".txt":  true,
		".xlsx": true,
	}

	allowedSpreadsheetTypes = map[string]bool{
		"text/csv":        true,
		"application/csv": true,
		"text/plain":      true,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	}

	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
)

// CreateProductForm defines the expected multipart structure for creating
// a product
type CreateProductForm struct {
	Name           string `form:"name" validate:"required,max=255"`
	Description    string `form:"description"`
	Brand          string `form:"brand"`
	SKU            string `form:"sku" validate:"required,max=255"`
	Price          string `form:"price" validate:"required"`
	Stock          int    `form:"stock" validate:"gte=0"`
	CategoryID     string `form:"category_id" validate:"required,uuid"`
	Specifications string `form:"specifications"` // JSON string object
}

// UpdateProductForm carries optional fields; absent fields stay untouched.
type UpdateProductForm struct {
	Name           *string `form:"name" validate:"omitempty,max=255"`
	Description    *string `form:"description"`
	Brand          *string `form:"brand"`
	Price          *string `form:"price"`
	Stock          *int    `form:"stock" validate:"omitempty,gte=0"`
	CategoryID     *string `form:"category_id" validate:"omitempty,uuid"`
	Specifications *string `form:"specifications"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ParsePagination validates and parses pagination parameters
func (rv *RequestValidator) ParsePagination(c *gin.Context) (int, int, error) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("perPage", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, errors.New("invalid page number")
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		return 0, 0, errors.New("invalid page size")
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return page, perPage, nil
}

// ParseCreateProductRequest validates and parses a product creation request
func (rv *RequestValidator) ParseCreateProductRequest(c *gin.Context) (services.ProductCreateRequest, []*multipart.FileHeader, error) {
	var form CreateProductForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductCreateRequest{}, nil, fmt.Errorf("invalid form data: %w", err)
	}
	if err := rv.validate.Struct(&form); err != nil {
		return services.ProductCreateRequest{}, nil, fmt.Errorf("validation failed: %w", err)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil || price.IsNegative() {
		return services.ProductCreateRequest{}, nil, errors.New("price must be a non-negative number")
	}

	categoryID, err := uuid.Parse(form.CategoryID)
	if err != nil {
		return services.ProductCreateRequest{}, nil, errors.New("invalid category ID format")
	}

	specs, err := parseSpecifications(form.Specifications)
	if err != nil {
		return services.ProductCreateRequest{}, nil, err
	}

	var images []*multipart.FileHeader
	if mpForm, err := c.MultipartForm(); err == nil {
		images = mpForm.File["images"]
	}
	for _, img := range images {
		if !rv.IsValidImageType(img) {
			return services.ProductCreateRequest{}, nil, fmt.Errorf("invalid image type for file %s. Allowed: jpeg, jpg, png, webp, gif", img.Filename)
		}
	}

	req := services.ProductCreateRequest{
		Name:           form.Name,
		Description:    form.Description,
		Brand:          form.Brand,
		SKU:            form.SKU,
		Price:          price,
		Stock:          form.Stock,
		CategoryID:     categoryID,
		Specifications: specs,
	}
	return req, images, nil
}

// ParseUpdateProductRequest validates and parses a product update request
func (rv *RequestValidator) ParseUpdateProductRequest(c *gin.Context) (services.ProductUpdateRequest, error) {
	var form UpdateProductForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductUpdateRequest{}, fmt.Errorf("invalid form data: %w", err)
	}
	if err := rv.validate.Struct(&form); err != nil {
		return services.ProductUpdateRequest{}, fmt.Errorf("validation failed: %w", err)
	}

	req := services.ProductUpdateRequest{
		Name:        form.Name,
		Description: form.Description,
		Brand:       form.Brand,
		Stock:       form.Stock,
	}

	if form.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*form.Price))
		if err != nil || price.IsNegative() {
			return services.ProductUpdateRequest{}, errors.New("price must be a non-negative number")
		}
		req.Price = &price
	}
	if form.CategoryID != nil {
		categoryID, err := uuid.Parse(*form.CategoryID)
		if err != nil {
			return services.ProductUpdateRequest{}, errors.New("invalid category ID format")
		}
		req.CategoryID = &categoryID
	}
	if form.Specifications != nil {
		specs, err := parseSpecifications(*form.Specifications)
		if err != nil {
			return services.ProductUpdateRequest{}, err
		}
		if specs == nil {
			specs = map[string]string{}
		}
		req.Specifications = specs
	}

	return req, nil
}

func parseSpecifications(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var specs map[string]string
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, errors.New("invalid specifications format, must be a JSON string object")
	}
	return specs, nil
}

// IsValidImageType checks if the file is a valid image
func (rv *RequestValidator) IsValidImageType(file *multipart.FileHeader) bool {
	if allowedImageTypes[file.Header.Get("Content-Type")] {
		return true
	}

	// Fallback: check by extension
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}

	return false
}

// IsValidSpreadsheetFile checks if the file is an accepted import format
func (rv *RequestValidator) IsValidSpreadsheetFile(file *multipart.FileHeader) bool {
	if allowedSpreadsheetTypes[file.Header.Get("Content-Type")] {
		return true
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	return allowedSpreadsheetExtensions[ext]
}

// ValidateFileSize checks if file size is within limits
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	return nil
}

// Validate exposes the underlying struct validator for JSON bodies.
func (rv *RequestValidator) Validate(v interface{}) error {
	return rv.validate.Struct(v)
}
