package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/abhismart8/resume-builder/internal/api/middleware"
	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/export"
	"github.com/abhismart8/resume-builder/internal/render"
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/storage"
	"github.com/abhismart8/resume-builder/internal/store"
	"github.com/abhismart8/resume-builder/internal/style"
	"github.com/abhismart8/resume-builder/internal/tasks"
)

type previewRequest struct {
	TemplateStyles style.Config `json:"templateStyles"`
}

// renderRequest 是无需登录保存即可渲染的请求体。
type renderRequest struct {
	TemplateID     string          `json:"templateId"`
	Data           json.RawMessage `json:"data"`
	TemplateStyles style.Config    `json:"templateStyles"`
}

// PreviewResume 以 Live 模式渲染已保存的简历，可临时覆盖模板样式。
func (h *ResumeHandler) PreviewResume(c *gin.Context) {
	doc, _, ok := h.ownedResume(c)
	if !ok {
		return
	}

	var req previewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "invalid preview request")
			return
		}
	}

	styles, err := h.resolveStyles(c.Request.Context(), doc.TemplateID, req.TemplateStyles)
	if err != nil {
		h.loggerFromContext(c).Error("load template styles failed", slog.Any("error", err))
		Internal(c, "failed to load template")
		return
	}

	safe := style.Normalize(styles, style.Live)
	c.JSON(http.StatusOK, render.Render(doc.Content.Data(), safe))
}

// RenderPreview 以 Live 模式渲染请求中的内容。
func (h *ResumeHandler) RenderPreview(c *gin.Context) {
	content, styles, ok := h.bindRenderRequest(c)
	if !ok {
		return
	}
	safe := style.Normalize(styles, style.Live)
	c.JSON(http.StatusOK, render.Render(content, safe))
}

// RenderStatic 将请求中的内容序列化为自包含的打印版 HTML。
func (h *ResumeHandler) RenderStatic(c *gin.Context) {
	content, styles, ok := h.bindRenderRequest(c)
	if !ok {
		return
	}
	artifact, err := export.Build(content, styles)
	if err != nil {
		h.loggerFromContext(c).Error("serialize static export failed", slog.Any("error", err))
		Internal(c, "failed to generate document")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"html":  string(artifact.HTML),
		"title": artifact.Title,
	})
}

// ExportHTML 返回已保存简历的打印版 HTML。
func (h *ResumeHandler) ExportHTML(c *gin.Context) {
	doc, _, ok := h.ownedResume(c)
	if !ok {
		return
	}

	styles, err := h.resolveStyles(c.Request.Context(), doc.TemplateID, style.Config{})
	if err != nil {
		h.loggerFromContext(c).Error("load template styles failed", slog.Any("error", err))
		Internal(c, "failed to load template")
		return
	}

	artifact, err := export.Build(doc.Content.Data(), styles)
	if err != nil {
		h.loggerFromContext(c).Error("serialize static export failed", slog.Any("error", err))
		Internal(c, "failed to generate document")
		return
	}
	c.Data(http.StatusOK, artifact.ContentType, artifact.HTML)
}

// ExportPDF 将 PDF 导出任务入队并立即返回 202。
func (h *ResumeHandler) ExportPDF(c *gin.Context) {
	doc, userID, ok := h.ownedResume(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("resume_id", uint64(doc.ID)))

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(doc.ID, userID, correlationID)
	if err != nil {
		logger.Error("create export task failed", slog.Any("error", err))
		Internal(c, "failed to create task")
		return
	}

	pending := database.ExportStatusPending
	if _, err := h.resumes.UpdateOne(ctx, store.Filter{ID: doc.ID, OwnerID: userID}, store.Patch{ExportStatus: &pending}); err != nil {
		logger.Error("mark export pending failed", slog.Any("error", err))
		Internal(c, "failed to enqueue pdf export")
		return
	}

	info, err := h.enqueuer.Enqueue(task, asynq.MaxRetry(h.exportRetry))
	if err != nil {
		logger.Error("enqueue pdf export failed", slog.Any("error", err))
		previous := doc.ExportStatus
		if _, rerr := h.resumes.UpdateOne(ctx, store.Filter{ID: doc.ID, OwnerID: userID}, store.Patch{ExportStatus: &previous}); rerr != nil {
			logger.Warn("restore export status failed", slog.Any("error", rerr))
		}
		Internal(c, "failed to enqueue pdf export")
		return
	}

	logger.Info("pdf export enqueued", slog.String("task_id", info.ID))
	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成最近一次导出 PDF 的限时下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	doc, userID, ok := h.ownedResume(c)
	if !ok {
		return
	}

	key := strings.TrimSpace(doc.PdfObjectKey)
	if key == "" || doc.ExportStatus != database.ExportStatusCompleted || !storage.OwnsExportKey(key, userID, doc.ID) {
		Conflict(c, "pdf not ready")
		return
	}

	filename := "resume.pdf"
	if name := strings.TrimSpace(doc.Content.Data().Personal.Name); name != "" {
		filename = strings.ReplaceAll(name, " ", "_") + "_Resume.pdf"
	}

	signedURL, err := h.objects.PresignDownload(c.Request.Context(), key, filename, h.downloadTTL)
	if err != nil {
		h.loggerFromContext(c).Error("presign download failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

func (h *ResumeHandler) bindRenderRequest(c *gin.Context) (resume.Content, style.Config, bool) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid render request")
		return resume.Content{}, style.Config{}, false
	}
	if len(req.Data) == 0 || string(req.Data) == "null" {
		BadRequest(c, "No resume data provided")
		return resume.Content{}, style.Config{}, false
	}

	body, err := decodeResumeBody(req.Data, resume.Content{})
	if err != nil {
		h.replyBodyError(c, err)
		return resume.Content{}, style.Config{}, false
	}

	styles, err := h.resolveStyles(c.Request.Context(), req.TemplateID, req.TemplateStyles)
	if err != nil {
		h.loggerFromContext(c).Error("load template styles failed", slog.Any("error", err))
		Internal(c, "failed to load template")
		return resume.Content{}, style.Config{}, false
	}
	return body.Content, styles, true
}

// resolveStyles 取模板样式并叠加调用方覆盖的属性，模板不存在时只用覆盖值。
func (h *ResumeHandler) resolveStyles(ctx context.Context, templateID string, override style.Config) (style.Config, error) {
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return override, nil
	}
	tpl, err := h.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return override, nil
		}
		return style.Config{}, err
	}
	return tpl.Styles.Data().Overlay(override), nil
}
