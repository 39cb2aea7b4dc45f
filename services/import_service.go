package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
)

// Optional spec-sheet columns copied into the product's specifications
// mapping when present and non-empty.
var specificationFields = []string{
	"processor", "gpu", "ram", "storage", "display", "keyboard",
	"battery", "warranty", "condition", "extras", "original_price", "features",
}

// importRowShape is the field-shape contract for one spreadsheet row.
// Numeric fields arrive as strings and get range-checked after this pass.
type importRowShape struct {
	Name      string `validate:"required,max=255"`
	Category  string `validate:"required"`
	Price     string `validate:"required,numeric"`
	SKU       string `validate:"required,max=255"`
	Stock     string `validate:"required,numeric"`
	Condition string `validate:"omitempty,oneof=new excellent good fair used-excellent used-very-good used-good"`
}

// ImportQueue hands a submitted job to the background worker.
type ImportQueue interface {
	Enqueue(ctx context.Context, job ImportJob) error
}

// ImportJob is the unit of work handed to the queue.
type ImportJob struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
}

// ImportService validates spreadsheet rows and drives preview and commit
// import runs.
type ImportService struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	jobs       JobStore
	queue      ImportQueue
	validate   *validator.Validate
}

func NewImportService(products repository.ProductRepo, categories repository.CategoryRepo, jobs JobStore, queue ImportQueue) *ImportService {
	return &ImportService{
		products:   products,
		categories: categories,
		jobs:       jobs,
		queue:      queue,
		validate:   validator.New(),
	}
}

// RunPreview validates every row without persisting anything.
func (s *ImportService) RunPreview(ctx context.Context, rows []RowFields) *models.ImportJobResult {
	return s.processRows(ctx, rows, false)
}

// SubmitImport records initial job state and enqueues the commit run.
// The processing status is written before returning so an immediate poll
// never reports not_found.
func (s *ImportService) SubmitImport(ctx context.Context, filePath string) (string, error) {
	jobID := uuid.New().String()

	if err := s.jobs.PutStatus(ctx, jobID, models.ImportJobProcessing); err != nil {
		return "", fmt.Errorf("failed to store job status: %w", err)
	}
	if err := s.queue.Enqueue(ctx, ImportJob{JobID: jobID, FilePath: filePath}); err != nil {
		return "", fmt.Errorf("failed to enqueue import job: %w", err)
	}

	zap.L().Info("Import job queued", zap.String("job_id", jobID))
	return jobID, nil
}

// RunImport is executed by the worker: it parses the uploaded spreadsheet,
// commits every valid row in file order, and records the outcome against
// the job. The temporary file is removed on both paths, best-effort.
func (s *ImportService) RunImport(ctx context.Context, filePath, jobID string) {
	defer func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			zap.L().Warn("Failed to remove import file",
				zap.String("job_id", jobID), zap.String("path", filePath), zap.Error(err))
		}
	}()

	if err := s.jobs.PutStatus(ctx, jobID, models.ImportJobProcessing); err != nil {
		zap.L().Error("Failed to mark job processing", zap.String("job_id", jobID), zap.Error(err))
	}

	rows, err := ParseSpreadsheetFile(filePath)
	if err != nil {
		s.failJob(ctx, jobID, err)
		return
	}

	result := s.processRows(ctx, rows, true)

	if err := s.jobs.PutResults(ctx, jobID, result); err != nil {
		s.failJob(ctx, jobID, fmt.Errorf("failed to store job results: %w", err))
		return
	}
	if err := s.jobs.PutStatus(ctx, jobID, models.ImportJobCompleted); err != nil {
		zap.L().Error("Failed to mark job completed", zap.String("job_id", jobID), zap.Error(err))
		return
	}

	zap.L().Info("Import job completed",
		zap.String("job_id", jobID),
		zap.Int("total", result.Total),
		zap.Int("success", result.Success),
		zap.Int("error", result.Errors))
}

// GetStatus reports the current job state; unknown or expired ids come back
// as not_found.
func (s *ImportService) GetStatus(ctx context.Context, jobID string) (*models.ImportJobStatus, error) {
	status, ok, err := s.jobs.GetStatus(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &models.ImportJobStatus{Status: models.ImportJobNotFound}, nil
	}

	resp := &models.ImportJobStatus{Status: status}
	switch status {
	case models.ImportJobCompleted:
		results, ok, err := s.jobs.GetResults(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if ok {
			resp.Results = results
		}
	case models.ImportJobFailed:
		msg, ok, err := s.jobs.GetError(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if ok {
			resp.Error = msg
		}
	}
	return resp, nil
}

func (s *ImportService) failJob(ctx context.Context, jobID string, cause error) {
	zap.L().Error("Import job failed", zap.String("job_id", jobID), zap.Error(cause))
	if err := s.jobs.PutError(ctx, jobID, cause.Error()); err != nil {
		zap.L().Error("Failed to store job error", zap.String("job_id", jobID), zap.Error(err))
	}
	if err := s.jobs.PutStatus(ctx, jobID, models.ImportJobFailed); err != nil {
		zap.L().Error("Failed to mark job failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

// processRows runs the validator over every row in file order. A row's
// failure never aborts the run. Accepted SKUs are tracked across the run so
// a later row reusing an earlier row's SKU fails in preview mode too, where
// nothing is persisted for the database check to see.
func (s *ImportService) processRows(ctx context.Context, rows []RowFields, commit bool) *models.ImportJobResult {
	result := &models.ImportJobResult{
		Total: len(rows),
		Rows:  make([]models.ImportRowResult, 0, len(rows)),
	}

	accepted := make(map[string]struct{})
	for i, row := range rows {
		rowNum := i + headerRowOffset
		outcome := s.processRow(ctx, row, rowNum, commit, accepted)
		switch outcome.Status {
		case models.ImportRowValid:
			result.Valid++
		case models.ImportRowSuccess:
			result.Success++
		default:
			result.Errors++
		}
		result.Rows = append(result.Rows, outcome)
	}
	return result
}

// processRow classifies one row and, in commit mode, persists it.
func (s *ImportService) processRow(ctx context.Context, row RowFields, rowNum int, commit bool, accepted map[string]struct{}) models.ImportRowResult {
	res := models.ImportRowResult{Row: rowNum, Data: row}

	shape := importRowShape{
		Name:      row["name"],
		Category:  row["category"],
		Price:     row["price"],
		SKU:       row["sku"],
		Stock:     row["stock"],
		Condition: row["condition"],
	}
	if rule := s.validateShape(shape); rule != "" {
		res.Status = models.ImportRowError
		res.Message = "Validation failed: " + rule
		return res
	}

	category, err := s.categories.FindByName(ctx, shape.Category)
	if err != nil {
		res.Status = models.ImportRowError
		res.Message = "Import failed: " + err.Error()
		zap.L().Error("Import row lookup failed",
			zap.Int("row", rowNum), zap.String("sku", shape.SKU), zap.Error(err))
		return res
	}
	if category == nil {
		res.Status = models.ImportRowError
		res.Message = fmt.Sprintf("Category '%s' not found. Please ensure category exists.", shape.Category)
		return res
	}

	if _, dup := accepted[shape.SKU]; dup {
		res.Status = models.ImportRowError
		res.Message = fmt.Sprintf("SKU '%s' already exists in database.", shape.SKU)
		return res
	}

	existing, err := s.products.FindBySKU(ctx, shape.SKU)
	if err != nil {
		res.Status = models.ImportRowError
		res.Message = "Import failed: " + err.Error()
		zap.L().Error("Import row lookup failed",
			zap.Int("row", rowNum), zap.String("sku", shape.SKU), zap.Error(err))
		return res
	}
	if existing != nil {
		res.Status = models.ImportRowError
		res.Message = fmt.Sprintf("SKU '%s' already exists in database.", shape.SKU)
		return res
	}

	if !commit {
		accepted[shape.SKU] = struct{}{}
		res.Status = models.ImportRowValid
		res.Message = "Ready to import"
		return res
	}

	product, err := s.buildProduct(row, shape, category.ID)
	if err == nil {
		err = s.products.Create(ctx, product)
	}
	if err != nil {
		res.Status = models.ImportRowError
		res.Message = "Import failed: " + err.Error()
		zap.L().Error("Import row failed",
			zap.Int("row", rowNum),
			zap.String("sku", shape.SKU),
			zap.String("name", shape.Name),
			zap.Error(err))
		return res
	}

	zap.L().Info("Product imported",
		zap.Int("row", rowNum),
		zap.String("sku", shape.SKU),
		zap.String("name", shape.Name))
	accepted[shape.SKU] = struct{}{}
	res.Status = models.ImportRowSuccess
	res.Message = "Product imported successfully"
	return res
}

// validateShape returns the first violated rule as human-readable text, or
// "" when the row is well-formed.
func (s *ImportService) validateShape(shape importRowShape) string {
	if err := s.validate.Struct(shape); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return shapeRuleMessage(verrs[0])
		}
		return err.Error()
	}

	price, err := decimal.NewFromString(shape.Price)
	if err != nil {
		return "price must be a valid number"
	}
	if price.IsNegative() {
		return "price must not be negative"
	}

	stock, err := strconv.Atoi(shape.Stock)
	if err != nil {
		return "stock must be a whole number"
	}
	if stock < 0 {
		return "stock must not be negative"
	}
	return ""
}

func shapeRuleMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "numeric":
		return field + " must be a valid number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// buildProduct assembles the product record for a commit-mode row. Import
// does not carry images, so the denormalized image URLs stay empty.
func (s *ImportService) buildProduct(row RowFields, shape importRowShape, categoryID uuid.UUID) (*models.Product, error) {
	price, err := decimal.NewFromString(shape.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}
	stock, err := strconv.Atoi(shape.Stock)
	if err != nil {
		return nil, fmt.Errorf("invalid stock: %w", err)
	}

	product := &models.Product{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Name:        shape.Name,
		Description: row["description"],
		Brand:       row["brand"],
		Price:       price,
		SKU:         shape.SKU,
		Stock:       stock,
	}

	specs := make(map[string]string)
	for _, key := range specificationFields {
		if value := row[key]; value != "" {
			specs[key] = value
		}
	}
	if len(specs) > 0 {
		data, err := json.Marshal(specs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode specifications: %w", err)
		}
		product.Specifications = datatypes.JSON(data)
	}
	return product, nil
}
