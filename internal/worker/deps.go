package worker

import (
	"context"
	"time"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/store"
)

// ResumeStore 是导出任务读写简历所需的操作。
type ResumeStore interface {
	FindOne(ctx context.Context, f store.Filter) (*database.Resume, error)
	UpdateOne(ctx context.Context, f store.Filter, p store.Patch) (*database.Resume, error)
}

// TemplateStore 是读取与回写模板所需的操作。
type TemplateStore interface {
	GetByID(ctx context.Context, slug string) (*database.Template, error)
	Update(ctx context.Context, slug string, columns map[string]any) (*database.Template, error)
}

// ObjectStore 保存导出产物。
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	PresignDownload(ctx context.Context, key, filename string, ttl time.Duration) (string, error)
}

// Printer 把自包含 HTML 打印为 PDF 或截图。
type Printer interface {
	PDF(ctx context.Context, html []byte) ([]byte, error)
	Screenshot(ctx context.Context, html []byte, quality int) ([]byte, error)
}
