package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
	"github.com/ihza6661/computer-store-rest-api-sub000/services"
)

type stubProductRepo struct{}

func (stubProductRepo) Create(ctx context.Context, p *models.Product) error { return nil }
func (stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, nil
}
func (stubProductRepo) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return nil, nil
}
func (stubProductRepo) List(ctx context.Context, params repository.ProductListParams) ([]models.Product, int64, error) {
	return nil, 0, nil
}
func (stubProductRepo) Update(ctx context.Context, p *models.Product) error { return nil }
func (stubProductRepo) UpdatePrimaryImage(ctx context.Context, id uuid.UUID, imageURL, thumbnailURL string) error {
	return nil
}
func (stubProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) { return 0, nil }
func (stubProductRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubCategoryRepo struct {
	names map[string]*models.Category
}

func (s *stubCategoryRepo) Create(ctx context.Context, c *models.Category) error { return nil }
func (s *stubCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return nil, nil
}
func (s *stubCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	c := s.names[strings.ToLower(strings.TrimSpace(name))]
	return c, nil
}
func (s *stubCategoryRepo) List(ctx context.Context) ([]models.Category, error) { return nil, nil }
func (s *stubCategoryRepo) Update(ctx context.Context, c *models.Category) error {
	return nil
}
func (s *stubCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) { return 0, nil }

type recordingQueue struct {
	jobs []services.ImportJob
}

func (q *recordingQueue) Enqueue(ctx context.Context, job services.ImportJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func newImportTestRouter(t *testing.T) (*gin.Engine, *recordingQueue, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	categories := &stubCategoryRepo{names: map[string]*models.Category{
		"laptops": {ID: uuid.New(), Name: "Laptops"},
	}}
	queue := &recordingQueue{}
	importService := services.NewImportService(
		stubProductRepo{}, categories, services.NewMemoryJobStore(time.Hour), queue)

	uploadDir := t.TempDir()
	handler := NewImportHandler(importService, NewRequestValidator(), uploadDir)

	r := gin.New()
	r.POST("/api/admin/products/import/preview", handler.Preview)
	r.POST("/api/admin/products/import/store", handler.Store)
	r.GET("/api/admin/products/import/status/:jobId", handler.Status)
	return r, queue, uploadDir
}

func multipartFile(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

const previewCSV = "name,category,price,sku,stock\nThinkPad X1,Laptops,1299.99,SKU-1,5\nNo Name,,999,SKU-2,1\n"

func TestPreviewReturnsRowResults(t *testing.T) {
	router, _, _ := newImportTestRouter(t)

	body, contentType := multipartFile(t, "file", "products.csv", previewCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/import/preview", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	var result models.ImportJobResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Total != 2 || result.Valid != 1 || result.Errors != 1 {
		t.Fatalf("unexpected totals: total=%d valid=%d errors=%d", result.Total, result.Valid, result.Errors)
	}
	if result.Rows[0].Row != 2 || result.Rows[0].Message != "Ready to import" {
		t.Fatalf("unexpected first row: %+v", result.Rows[0])
	}
	if result.Rows[1].Message != "Validation failed: category is required" {
		t.Fatalf("unexpected second row message: %q", result.Rows[1].Message)
	}
}

func TestPreviewRejectsUnsupportedFileType(t *testing.T) {
	router, _, _ := newImportTestRouter(t)

	body, contentType := multipartFile(t, "file", "products.pdf", "junk")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/import/preview", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, recorder.Code)
	}
}

func TestPreviewRequiresFile(t *testing.T) {
	router, _, _ := newImportTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/import/preview", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, recorder.Code)
	}
}

func TestStoreQueuesJobAndPersistsFile(t *testing.T) {
	router, queue, uploadDir := newImportTestRouter(t)

	body, contentType := multipartFile(t, "file", "products.csv", previewCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/import/store", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("expected a job_id in the response")
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("expected one queued job, got %d", len(queue.jobs))
	}
	job := queue.jobs[0]
	if job.JobID != resp.JobID {
		t.Fatalf("queued job id %q does not match response %q", job.JobID, resp.JobID)
	}
	if !strings.HasPrefix(job.FilePath, uploadDir) {
		t.Fatalf("expected file under %s, got %s", uploadDir, job.FilePath)
	}
	data, err := os.ReadFile(job.FilePath)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != previewCSV {
		t.Fatal("stored file content does not match upload")
	}

	// An immediate status poll must already see the job.
	statusReq := httptest.NewRequest(http.MethodGet, "/api/admin/products/import/status/"+resp.JobID, nil)
	statusRec := httptest.NewRecorder()
	router.ServeHTTP(statusRec, statusReq)

	if statusRec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, statusRec.Code)
	}
	var status models.ImportJobStatus
	if err := json.Unmarshal(statusRec.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status.Status != models.ImportJobProcessing {
		t.Fatalf("expected processing, got %q", status.Status)
	}
}

func TestStatusUnknownJobInBody(t *testing.T) {
	router, _, _ := newImportTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products/import/status/does-not-exist", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unknown jobs are reported in the body, expected %d got %d", http.StatusOK, recorder.Code)
	}
	var status models.ImportJobStatus
	if err := json.Unmarshal(recorder.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status.Status != models.ImportJobNotFound {
		t.Fatalf("expected not_found, got %q", status.Status)
	}
}
