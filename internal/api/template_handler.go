package api

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"

	"github.com/abhismart8/resume-builder/internal/api/middleware"
	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/store"
	"github.com/abhismart8/resume-builder/internal/style"
	"github.com/abhismart8/resume-builder/internal/tasks"
)

var templateSlugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,127}$`)

// TemplateHandler 负责模板目录：公开只读接口与管理员维护接口。
type TemplateHandler struct {
	templates *store.TemplateStore
	enqueuer  TaskEnqueuer
	logger    *slog.Logger
}

func NewTemplateHandler(templates *store.TemplateStore, enqueuer TaskEnqueuer, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, enqueuer: enqueuer, logger: logger}
}

type templateResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Thumbnail   string         `json:"thumbnail"`
	IsActive    bool           `json:"isActive"`
	SortOrder   int            `json:"sortOrder"`
	CSSStyles   style.Config   `json:"cssStyles"`
	PreviewData resume.Content `json:"previewData"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func newTemplateResponse(t database.Template) templateResponse {
	return templateResponse{
		ID:          t.Slug,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Thumbnail:   t.Thumbnail,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CSSStyles:   t.Styles.Data(),
		PreviewData: t.PreviewData.Data(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTemplateList(ts []database.Template) []templateResponse {
	out := make([]templateResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, newTemplateResponse(t))
	}
	return out
}

type createTemplateRequest struct {
	ID          string          `json:"id" binding:"required"`
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description" binding:"required,max=1024"`
	Category    string          `json:"category" binding:"max=64"`
	Thumbnail   string          `json:"thumbnail" binding:"max=512"`
	IsActive    *bool           `json:"isActive"`
	SortOrder   int             `json:"sortOrder"`
	CSSStyles   style.Config    `json:"cssStyles"`
	PreviewData *resume.Content `json:"previewData"`
}

type updateTemplateRequest struct {
	Name        *string         `json:"name" binding:"omitempty,max=255"`
	Description *string         `json:"description" binding:"omitempty,max=1024"`
	Category    *string         `json:"category" binding:"omitempty,max=64"`
	Thumbnail   *string         `json:"thumbnail" binding:"omitempty,max=512"`
	IsActive    *bool           `json:"isActive"`
	SortOrder   *int            `json:"sortOrder"`
	CSSStyles   *style.Config   `json:"cssStyles"`
	PreviewData *resume.Content `json:"previewData"`
}

// GET /v1/templates
// 列表：仅返回启用的模板。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	ts, err := h.templates.ListActive(c.Request.Context())
	if err != nil {
		h.loggerFromContext(c).Error("list templates failed", slog.Any("error", err))
		Internal(c, "failed to list templates")
		return
	}
	c.JSON(http.StatusOK, newTemplateList(ts))
}

// GET /v1/templates/:templateId
// 详情：停用的模板视为不存在。
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	t, err := h.templates.GetByID(c.Request.Context(), c.Param("templateId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "Template not found")
			return
		}
		h.loggerFromContext(c).Error("query template failed", slog.Any("error", err))
		Internal(c, "failed to query template")
		return
	}
	if !t.IsActive {
		NotFound(c, "Template not found")
		return
	}
	c.JSON(http.StatusOK, newTemplateResponse(*t))
}

// GET /v1/admin/templates
func (h *TemplateHandler) AdminListTemplates(c *gin.Context) {
	ts, err := h.templates.ListAll(c.Request.Context())
	if err != nil {
		h.loggerFromContext(c).Error("list all templates failed", slog.Any("error", err))
		Internal(c, "failed to list templates")
		return
	}
	c.JSON(http.StatusOK, newTemplateList(ts))
}

// POST /v1/admin/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	slug := strings.TrimSpace(req.ID)
	if !templateSlugPattern.MatchString(slug) {
		BadRequest(c, "template id must be lowercase letters, digits or hyphens")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	var preview resume.Content
	if req.PreviewData != nil {
		preview = *req.PreviewData
		preview.Sanitize()
	}

	model := database.Template{
		Slug:        slug,
		Name:        resume.StripTags(req.Name),
		Description: resume.StripTags(req.Description),
		Category:    resume.StripTags(req.Category),
		Thumbnail:   strings.TrimSpace(req.Thumbnail),
		IsActive:    active,
		SortOrder:   req.SortOrder,
		Styles:      datatypes.NewJSONType(req.CSSStyles),
		PreviewData: datatypes.NewJSONType(preview),
	}
	if err := h.templates.Create(c.Request.Context(), &model); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			Conflict(c, "template id already exists")
			return
		}
		h.loggerFromContext(c).Error("create template failed", slog.Any("error", err))
		Internal(c, "failed to create template")
		return
	}

	h.enqueueThumbnail(c, model.Slug)
	c.JSON(http.StatusCreated, newTemplateResponse(model))
}

// PUT /v1/admin/templates/:templateId
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	columns := map[string]any{}
	if req.Name != nil {
		columns["name"] = resume.StripTags(*req.Name)
	}
	if req.Description != nil {
		columns["description"] = resume.StripTags(*req.Description)
	}
	if req.Category != nil {
		category := resume.StripTags(*req.Category)
		if category == "" {
			category = database.DefaultTemplateCategory
		}
		columns["category"] = category
	}
	if req.Thumbnail != nil {
		columns["thumbnail"] = strings.TrimSpace(*req.Thumbnail)
	}
	if req.IsActive != nil {
		columns["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		columns["sort_order"] = *req.SortOrder
	}
	if req.CSSStyles != nil {
		columns["styles"] = datatypes.NewJSONType(*req.CSSStyles)
	}
	if req.PreviewData != nil {
		preview := *req.PreviewData
		preview.Sanitize()
		columns["preview_data"] = datatypes.NewJSONType(preview)
	}

	slug := c.Param("templateId")
	t, err := h.templates.Update(c.Request.Context(), slug, columns)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "Template not found")
			return
		}
		h.loggerFromContext(c).Error("update template failed", slog.Any("error", err))
		Internal(c, "failed to update template")
		return
	}

	if req.CSSStyles != nil || req.PreviewData != nil {
		h.enqueueThumbnail(c, t.Slug)
	}
	c.JSON(http.StatusOK, newTemplateResponse(*t))
}

// DELETE /v1/admin/templates/:templateId
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	deleted, err := h.templates.Delete(c.Request.Context(), c.Param("templateId"))
	if err != nil {
		h.loggerFromContext(c).Error("delete template failed", slog.Any("error", err))
		Internal(c, "failed to delete template")
		return
	}
	if !deleted {
		NotFound(c, "Template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// POST /v1/admin/templates/:templateId/thumbnail
func (h *TemplateHandler) RegenerateThumbnail(c *gin.Context) {
	slug := c.Param("templateId")
	if _, err := h.templates.GetByID(c.Request.Context(), slug); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "Template not found")
			return
		}
		h.loggerFromContext(c).Error("query template failed", slog.Any("error", err))
		Internal(c, "failed to query template")
		return
	}
	info, ok := h.enqueueThumbnail(c, slug)
	if !ok {
		Internal(c, "failed to enqueue thumbnail generation")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"task_id": info.ID})
}

// enqueueThumbnail 投递缩略图任务，失败只记录日志。
func (h *TemplateHandler) enqueueThumbnail(c *gin.Context, slug string) (*asynq.TaskInfo, bool) {
	if h.enqueuer == nil {
		return nil, false
	}
	logger := h.loggerFromContext(c).With(slog.String("template_id", slug))
	task, err := tasks.NewTemplateThumbnailTask(slug, middleware.GetCorrelationID(c))
	if err != nil {
		logger.Error("create thumbnail task failed", slog.Any("error", err))
		return nil, false
	}
	info, err := h.enqueuer.Enqueue(task, asynq.MaxRetry(3))
	if err != nil {
		logger.Warn("enqueue thumbnail task failed", slog.Any("error", err))
		return nil, false
	}
	return info, true
}

func (h *TemplateHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
