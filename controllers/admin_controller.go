package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ihza6661/computer-store-rest-api-sub000/services"
)

// AdminHandler handles admin account management
type AdminHandler struct {
	admins    *services.AdminService
	validator *RequestValidator
	timeout   time.Duration
}

func NewAdminHandler(admins *services.AdminService, validator *RequestValidator) *AdminHandler {
	return &AdminHandler{
		admins:    admins,
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

func (h *AdminHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	admins, err := h.admins.ListAdmins(ctx)
	if err != nil {
		zap.L().Error("Error fetching admin users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admin users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

func (h *AdminHandler) Create(c *gin.Context) {
	var req services.AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	admin, err := h.admins.CreateAdmin(ctx, req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Error creating admin user", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin user"})
		return
	}

	zap.L().Info("Admin user created", zap.String("id", admin.ID.String()), zap.String("email", admin.Email))
	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	admin, err := h.admins.UpdateAdmin(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin user not found"})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			zap.L().Error("Error updating admin user", zap.String("id", id.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update admin user"})
		}
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.admins.DeleteAdmin(ctx, id); err != nil {
		if errors.Is(err, services.ErrAdminNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin user not found"})
			return
		}
		zap.L().Error("Error deleting admin user", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete admin user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin user deleted successfully"})
}
