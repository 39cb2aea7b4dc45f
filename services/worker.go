package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const importQueueKey = "import_jobs:queue"

// RedisImportQueue hands jobs to the worker over a Redis list.
type RedisImportQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisImportQueue(rdb *redis.Client) *RedisImportQueue {
	return &RedisImportQueue{rdb: rdb, key: importQueueKey}
}

func (q *RedisImportQueue) Enqueue(ctx context.Context, job ImportJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal import job: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// StartImportWorker starts the background worker that consumes import jobs
// from the Redis queue. Jobs run one at a time, to completion.
func StartImportWorker(ctx context.Context, rdb *redis.Client, imports *ImportService) {
	if rdb == nil || imports == nil {
		zap.L().Warn("Import worker not started: missing dependencies")
		return
	}

	go func() {
		zap.L().Info("Import worker started", zap.String("queue", importQueueKey))
		for {
			select {
			case <-ctx.Done():
				zap.L().Info("Import worker stopping")
				return
			default:
			}

			// BLPop with no timeout blocks until a job is available.
			res, err := rdb.BLPop(ctx, 0*time.Second, importQueueKey).Result()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				zap.L().Error("Redis BLPop failed", zap.Error(err))
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if len(res) < 2 {
				continue
			}

			var job ImportJob
			if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
				zap.L().Error("Failed to parse import job payload", zap.Error(err))
				continue
			}

			zap.L().Info("Import job picked up", zap.String("job_id", job.JobID))
			imports.RunImport(ctx, job.FilePath, job.JobID)
		}
	}()
}
