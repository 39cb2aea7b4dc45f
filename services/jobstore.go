package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
)

// JobTTL is how long import job state stays readable after the last write.
const JobTTL = time.Hour

// JobStore holds the transient state of asynchronous import jobs. Reads
// report presence explicitly; an expired or never-written key is absent,
// not an error.
type JobStore interface {
	PutStatus(ctx context.Context, jobID, status string) error
	GetStatus(ctx context.Context, jobID string) (string, bool, error)
	PutResults(ctx context.Context, jobID string, results *models.ImportJobResult) error
	GetResults(ctx context.Context, jobID string) (*models.ImportJobResult, bool, error)
	PutError(ctx context.Context, jobID, message string) error
	GetError(ctx context.Context, jobID string) (string, bool, error)
}

func jobStatusKey(jobID string) string  { return fmt.Sprintf("import_job_%s_status", jobID) }
func jobResultsKey(jobID string) string { return fmt.Sprintf("import_job_%s_results", jobID) }
func jobErrorKey(jobID string) string   { return fmt.Sprintf("import_job_%s_error", jobID) }

// RedisJobStore is the production JobStore.
type RedisJobStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisJobStore(rdb *redis.Client) *RedisJobStore {
	return &RedisJobStore{rdb: rdb, ttl: JobTTL}
}

func (s *RedisJobStore) PutStatus(ctx context.Context, jobID, status string) error {
	return s.rdb.Set(ctx, jobStatusKey(jobID), status, s.ttl).Err()
}

func (s *RedisJobStore) GetStatus(ctx context.Context, jobID string) (string, bool, error) {
	return s.get(ctx, jobStatusKey(jobID))
}

func (s *RedisJobStore) PutResults(ctx context.Context, jobID string, results *models.ImportJobResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal job results: %w", err)
	}
	return s.rdb.Set(ctx, jobResultsKey(jobID), data, s.ttl).Err()
}

func (s *RedisJobStore) GetResults(ctx context.Context, jobID string) (*models.ImportJobResult, bool, error) {
	val, ok, err := s.get(ctx, jobResultsKey(jobID))
	if err != nil || !ok {
		return nil, ok, err
	}
	var results models.ImportJobResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, false, fmt.Errorf("failed to parse job results: %w", err)
	}
	return &results, true, nil
}

func (s *RedisJobStore) PutError(ctx context.Context, jobID, message string) error {
	return s.rdb.Set(ctx, jobErrorKey(jobID), message, s.ttl).Err()
}

func (s *RedisJobStore) GetError(ctx context.Context, jobID string) (string, bool, error) {
	return s.get(ctx, jobErrorKey(jobID))
}

func (s *RedisJobStore) get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// MemoryJobStore is an in-process JobStore with the same expiry semantics,
// used by tests in place of Redis.
type MemoryJobStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]memoryJobItem
}

type memoryJobItem struct {
	value   string
	expires time.Time
}

func NewMemoryJobStore(ttl time.Duration) *MemoryJobStore {
	return &MemoryJobStore{ttl: ttl, items: make(map[string]memoryJobItem)}
}

func (s *MemoryJobStore) PutStatus(ctx context.Context, jobID, status string) error {
	s.put(jobStatusKey(jobID), status)
	return nil
}

func (s *MemoryJobStore) GetStatus(ctx context.Context, jobID string) (string, bool, error) {
	val, ok := s.get(jobStatusKey(jobID))
	return val, ok, nil
}

func (s *MemoryJobStore) PutResults(ctx context.Context, jobID string, results *models.ImportJobResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	s.put(jobResultsKey(jobID), string(data))
	return nil
}

func (s *MemoryJobStore) GetResults(ctx context.Context, jobID string) (*models.ImportJobResult, bool, error) {
	val, ok := s.get(jobResultsKey(jobID))
	if !ok {
		return nil, false, nil
	}
	var results models.ImportJobResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, false, err
	}
	return &results, true, nil
}

func (s *MemoryJobStore) PutError(ctx context.Context, jobID, message string) error {
	s.put(jobErrorKey(jobID), message)
	return nil
}

func (s *MemoryJobStore) GetError(ctx context.Context, jobID string) (string, bool, error) {
	val, ok := s.get(jobErrorKey(jobID))
	return val, ok, nil
}

func (s *MemoryJobStore) put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memoryJobItem{value: value, expires: time.Now().Add(s.ttl)}
}

func (s *MemoryJobStore) get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	if !ok || time.Now().After(item.expires) {
		return "", false
	}
	return item.value, true
}
