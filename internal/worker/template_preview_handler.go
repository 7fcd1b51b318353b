package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/abhismart8/resume-builder/internal/export"
	"github.com/abhismart8/resume-builder/internal/storage"
	"github.com/abhismart8/resume-builder/internal/store"
	"github.com/abhismart8/resume-builder/internal/tasks"
)

const (
	thumbnailQuality    = 80
	thumbnailPresignTTL = 7 * 24 * time.Hour
)

// TemplatePreviewHandler 用模板自带的示例数据生成缩略图。
type TemplatePreviewHandler struct {
	templates TemplateStore
	objects   ObjectStore
	printer   Printer
	logger    *slog.Logger
}

func NewTemplatePreviewHandler(templates TemplateStore, objects ObjectStore, printer Printer, logger *slog.Logger) *TemplatePreviewHandler {
	return &TemplatePreviewHandler{
		templates: templates,
		objects:   objects,
		printer:   printer,
		logger:    logger,
	}
}

func (h *TemplatePreviewHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log := h.logger

	var payload tasks.TemplateThumbnailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal template preview payload failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log = log.With(
		slog.String("template_id", payload.TemplateID),
		slog.String("correlation_id", payload.CorrelationID),
	)
	log.Info("Starting template preview generation task...")

	tpl, err := h.templates.GetByID(ctx, payload.TemplateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("template not found, skipping task")
			return nil
		}
		log.Error("query template failed", slog.Any("error", err))
		return err
	}

	artifact, err := export.Build(tpl.PreviewData.Data(), tpl.Styles.Data())
	if err != nil {
		log.Error("serialize template preview failed", slog.Any("error", err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	shot, err := h.printer.Screenshot(ctx, artifact.HTML, thumbnailQuality)
	if err != nil {
		log.Error("capture template screenshot failed", slog.Any("error", err))
		return err
	}

	objectName := storage.ThumbnailKey(tpl.Slug)
	if err := h.objects.Upload(ctx, objectName, shot, "image/jpeg"); err != nil {
		log.Error("upload template preview failed", slog.Any("error", err))
		return err
	}

	url, err := h.objects.PresignDownload(ctx, objectName, "", thumbnailPresignTTL)
	if err != nil {
		log.Error("generate template preview url failed", slog.Any("error", err))
		return err
	}

	if _, err := h.templates.Update(ctx, tpl.Slug, map[string]any{"thumbnail": url}); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("template deleted during preview generation")
			return nil
		}
		log.Error("update template thumbnail failed", slog.Any("error", err))
		return err
	}

	log.Info("Template preview generation completed.")
	return nil
}
