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

// ContactHandler handles contact form submissions
type ContactHandler struct {
	contacts  *services.ContactService
	validator *RequestValidator
	timeout   time.Duration
}

func NewContactHandler(contacts *services.ContactService, validator *RequestValidator) *ContactHandler {
	return &ContactHandler{
		contacts:  contacts,
		validator: validator,
		timeout:   DefaultContextTimeout,
	}
}

// Submit accepts a public contact form submission.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req services.ContactCreateRequest
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

	submission, err := h.contacts.CreateSubmission(ctx, req)
	if err != nil {
		zap.L().Error("Error saving contact submission", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      submission.ID,
		"message": "Thank you for contacting us",
	})
}

// List returns submissions for the admin inbox, optionally unread only.
func (h *ContactHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	submissions, err := h.contacts.ListSubmissions(ctx, unreadOnly)
	if err != nil {
		zap.L().Error("Error fetching contact submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.contacts.MarkRead(ctx, id); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		zap.L().Error("Error marking submission read", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission marked as read"})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.contacts.DeleteSubmission(ctx, id); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		zap.L().Error("Error deleting submission", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted successfully"})
}
