package api

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer 投递异步任务，*asynq.Client 满足该接口。
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ObjectStore 访问导出文件，*storage.Client 满足该接口。
type ObjectStore interface {
	PresignDownload(ctx context.Context, key, filename string, ttl time.Duration) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}
