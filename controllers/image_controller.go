package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ihza6661/computer-store-rest-api-sub000/services"
)

// ImageHandler handles per-product image operations
type ImageHandler struct {
	images    *services.ImageService
	products  *services.ProductService
	assets    services.AssetHost
	validator *RequestValidator
	timeout   time.Duration
}

func NewImageHandler(images *services.ImageService, products *services.ProductService, assets services.AssetHost, validator *RequestValidator) *ImageHandler {
	return &ImageHandler{
		images:    images,
		products:  products,
		assets:    assets,
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

// Upload attaches a new image to an existing product.
func (h *ImageHandler) Upload(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "image file is required"})
		return
	}
	if !h.validator.IsValidImageType(file) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("invalid image type for file %s. Allowed: jpeg, jpg, png, webp, gif", file.Filename)})
		return
	}
	if err := h.validator.ValidateFileSize(file); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if _, err := h.products.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer src.Close()

	if h.assets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image hosting is not configured"})
		return
	}

	upload, err := h.assets.Upload(ctx, src, fmt.Sprintf("product_img_%s_%s", productID, uuid.NewString()))
	if err != nil {
		zap.L().Error("Image upload failed", zap.String("product_id", productID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	img, err := h.images.AddImage(ctx, productID, *upload)
	if err != nil {
		zap.L().Error("Failed to save image record", zap.String("product_id", productID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// Delete removes an image from a product. The last remaining image of a
// product cannot be deleted.
func (h *ImageHandler) Delete(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.images.DeleteImage(ctx, productID, imageID); err != nil {
		switch {
		case errors.Is(err, services.ErrImageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		case errors.Is(err, services.ErrImageNotOwned):
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found for this product"})
		case errors.Is(err, services.ErrLastImage):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Error deleting image", zap.String("image_id", imageID.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// SetPrimary promotes an image to be the product's primary image.
func (h *ImageHandler) SetPrimary(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.images.SetPrimary(ctx, productID, imageID); err != nil {
		switch {
		case errors.Is(err, services.ErrImageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		case errors.Is(err, services.ErrImageNotOwned):
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found for this product"})
		default:
			zap.L().Error("Error setting primary image", zap.String("image_id", imageID.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set primary image"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated successfully"})
}
