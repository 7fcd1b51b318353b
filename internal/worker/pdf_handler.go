package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/errcode"
	"github.com/abhismart8/resume-builder/internal/export"
	"github.com/abhismart8/resume-builder/internal/metrics"
	"github.com/abhismart8/resume-builder/internal/storage"
	"github.com/abhismart8/resume-builder/internal/store"
	"github.com/abhismart8/resume-builder/internal/style"
	"github.com/abhismart8/resume-builder/internal/tasks"
)

const contentTypePDF = "application/pdf"

// PDFTaskHandler 负责消费 PDF 导出任务：静态导出 HTML，打印为 PDF 并上传。
type PDFTaskHandler struct {
	resumes   ResumeStore
	templates TemplateStore
	objects   ObjectStore
	printer   Printer
	notifier  Notifier
	logger    *slog.Logger
}

// NewPDFTaskHandler 创建任务处理器。
func NewPDFTaskHandler(
	resumes ResumeStore,
	templates TemplateStore,
	objects ObjectStore,
	printer Printer,
	notifier Notifier,
	logger *slog.Logger,
) *PDFTaskHandler {
	return &PDFTaskHandler{
		resumes:   resumes,
		templates: templates,
		objects:   objects,
		printer:   printer,
		notifier:  notifier,
		logger:    logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("resume_id", uint64(payload.ResumeID)),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)
	log.Info("Starting PDF export task...")

	owned := store.Filter{ID: payload.ResumeID, OwnerID: payload.UserID}
	doc, err := h.resumes.FindOne(ctx, owned)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	started := time.Now()
	code := errcode.SystemError
	defer func() {
		if retErr == nil {
			return
		}
		metrics.ObserveExport("pdf", started, 0, retErr)
		if !errors.Is(retErr, asynq.SkipRetry) && !isFinalAsynqAttempt(ctx) {
			return
		}
		h.fail(ctx, log, owned, payload, code, retErr)
	}()

	styles, err := h.templateStyles(ctx, doc.TemplateID)
	if err != nil {
		log.Error("load template styles failed", slog.Any("error", err))
		return err
	}

	artifact, err := export.Build(doc.Content.Data(), styles)
	if err != nil {
		code = errcode.RenderFailed
		log.Error("serialize resume failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	pdfBytes, err := h.printer.PDF(ctx, artifact.HTML)
	if err != nil {
		code = errcode.RenderFailed
		log.Error("print pdf failed", slog.Any("error", err))
		return err
	}

	objectKey := storage.NewExportKey(doc.UserID, doc.ID)
	if err := h.objects.Upload(ctx, objectKey, pdfBytes, contentTypePDF); err != nil {
		code = errcode.UploadFailed
		log.Error("upload pdf failed", slog.Any("error", err))
		if storage.IsNoSuchBucket(err) {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}

	status := database.ExportStatusCompleted
	if _, err := h.resumes.UpdateOne(ctx, owned, store.Patch{PdfObjectKey: &objectKey, ExportStatus: &status}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// 导出期间简历被删除。
			log.Warn("resume deleted during export, discarding pdf")
			if err := h.objects.DeleteObject(ctx, objectKey); err != nil {
				log.Warn("delete orphaned pdf failed", slog.String("object_key", objectKey), slog.Any("error", err))
			}
			return nil
		}
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}

	if old := strings.TrimSpace(doc.PdfObjectKey); old != "" && old != objectKey {
		if err := h.objects.DeleteObject(ctx, old); err != nil {
			log.Warn("delete previous pdf failed", slog.String("object_key", old), slog.Any("error", err))
		}
	}
	metrics.ObserveExport("pdf", started, len(pdfBytes), nil)

	if err := h.notifier.Notify(ctx, doc.UserID, ExportNotifyMessage{
		Status:        NotifyCompleted,
		ResumeID:      doc.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}); err != nil {
		log.Warn("publish completion notification failed", slog.Any("error", err))
	}

	log.Info("PDF export task completed.", slog.String("object_key", objectKey), slog.Int("bytes", len(pdfBytes)))
	return nil
}

// templateStyles 读取模板样式，模板不存在时使用默认样式。
func (h *PDFTaskHandler) templateStyles(ctx context.Context, templateID string) (style.Config, error) {
	if strings.TrimSpace(templateID) == "" {
		return style.Config{}, nil
	}
	tpl, err := h.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.logger.Warn("template not found, using default styles", slog.String("template_id", templateID))
			return style.Config{}, nil
		}
		return style.Config{}, err
	}
	return tpl.Styles.Data(), nil
}

func (h *PDFTaskHandler) fail(ctx context.Context, log *slog.Logger, owned store.Filter, payload tasks.PDFExportPayload, code int, cause error) {
	log.Error("pdf export failed permanently", slog.Int("error_code", code), slog.Any("error", cause))
	status := database.ExportStatusFailed
	if _, err := h.resumes.UpdateOne(ctx, owned, store.Patch{ExportStatus: &status}); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("mark export failed", slog.Any("error", err))
	}
	msg := ExportNotifyMessage{
		Status:        NotifyError,
		ResumeID:      payload.ResumeID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     code,
		ErrorMessage:  errcode.Message(code),
	}
	if err := h.notifier.Notify(ctx, payload.UserID, msg); err != nil {
		log.Error("publish pdf error notification failed", slog.Any("error", err))
	}
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
