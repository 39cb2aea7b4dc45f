package controllers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ihza6661/computer-store-rest-api-sub000/services"
)

// DefaultContextTimeout bounds request-scoped work.
const DefaultContextTimeout = 30 * time.Second

// ImportHandler handles bulk product import operations
type ImportHandler struct {
	imports   *services.ImportService
	validator *RequestValidator
	uploadDir string
	timeout   time.Duration
}

func NewImportHandler(imports *services.ImportService, validator *RequestValidator, uploadDir string) *ImportHandler {
	return &ImportHandler{
		imports:   imports,
		validator: validator,
		uploadDir: uploadDir,
		timeout:   DefaultContextTimeout,
	}
}

// Preview validates the uploaded spreadsheet row by row without writing
// anything to the catalog.
func (h *ImportHandler) Preview(c *gin.Context) {
	file, err := h.getAndValidateFile(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	fileHandle, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer fileHandle.Close()

	rows, err := services.ParseSpreadsheet(fileHandle, file.Filename)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	c.JSON(http.StatusOK, h.imports.RunPreview(ctx, rows))
}

// Store accepts the spreadsheet, persists it to the upload directory and
// queues an asynchronous import job.
func (h *ImportHandler) Store(c *gin.Context) {
	file, err := h.getAndValidateFile(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	path, err := h.saveUpload(file)
	if err != nil {
		zap.L().Error("Failed to store import file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}

	jobID, err := h.imports.SubmitImport(ctx, path)
	if err != nil {
		zap.L().Error("Failed to queue import job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue import job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":  jobID,
		"message": "Import queued for processing",
	})
}

// Status reports the state of a previously queued import job. Unknown job
// IDs are reported in the body rather than via the HTTP status code, so
// clients can poll a job before the worker picks it up.
func (h *ImportHandler) Status(c *gin.Context) {
	id := strings.TrimSpace(c.Param("jobId"))
	if id == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Job ID required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := h.imports.GetStatus(ctx, id)
	if err != nil {
		zap.L().Error("Failed to get job status", zap.String("job_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// Private helper methods

func (h *ImportHandler) getAndValidateFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}

	if !h.validator.IsValidSpreadsheetFile(file) {
		return nil, fmt.Errorf("invalid file type. Only CSV and XLSX files are allowed")
	}

	if err := h.validator.ValidateFileSize(file); err != nil {
		return nil, err
	}

	return file, nil
}

func (h *ImportHandler) saveUpload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(h.uploadDir, fmt.Sprintf("import_%s%s", uuid.NewString(), ext))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}
