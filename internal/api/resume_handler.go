package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abhismart8/resume-builder/internal/api/middleware"
	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/storage"
	"github.com/abhismart8/resume-builder/internal/store"
)

const maxResumeBodyBytes = 1 << 20

// ResumeHandler 负责简历的增删改查、预览与导出。
type ResumeHandler struct {
	db          *gorm.DB
	resumes     *store.ResumeStore
	templates   *store.TemplateStore
	enqueuer    TaskEnqueuer
	objects     ObjectStore
	logger      *slog.Logger
	maxResumes  int
	exportRetry int
	downloadTTL time.Duration
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(
	db *gorm.DB,
	enqueuer TaskEnqueuer,
	objects ObjectStore,
	logger *slog.Logger,
	maxResumes int,
	exportRetry int,
	downloadTTL time.Duration,
) *ResumeHandler {
	return &ResumeHandler{
		db:          db,
		resumes:     store.NewResumeStore(db),
		templates:   store.NewTemplateStore(db),
		enqueuer:    enqueuer,
		objects:     objects,
		logger:      logger,
		maxResumes:  maxResumes,
		exportRetry: exportRetry,
		downloadTTL: downloadTTL,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

// CreateResume 保存一份新的简历，新简历总是私有的。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	raw, err := readBody(c)
	if err != nil {
		BadRequest(c, "failed to read request body")
		return
	}
	body, err := decodeResumeBody(raw, resume.Content{})
	if err != nil {
		h.replyBodyError(c, err)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	count, err := h.resumes.Count(ctx, userID)
	if err != nil {
		logger.Error("count resumes failed", slog.Any("error", err))
		Internal(c, "failed to count resumes")
		return
	}
	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	doc := database.Resume{
		UserID:  userID,
		Title:   defaultResumeTitle,
		Content: datatypes.NewJSONType(body.Content),
	}
	if body.Title != nil && *body.Title != "" {
		doc.Title = *body.Title
	}
	if body.TemplateID != nil {
		doc.TemplateID = *body.TemplateID
	}

	if err := h.resumes.Insert(ctx, &doc); err != nil {
		logger.Error("create resume failed", slog.Any("error", err))
		Internal(c, "failed to create resume")
		return
	}

	if err := h.setActiveResumeID(ctx, userID, &doc.ID); err != nil {
		logger.Error("mark active resume failed", slog.Any("error", err))
		Internal(c, "failed to mark active resume")
		return
	}

	logger.Info("resume created", slog.Uint64("resume_id", uint64(doc.ID)))
	c.JSON(http.StatusCreated, newResumeResponse(doc))
}

// ListResumes 按创建时间倒序列出用户全部简历。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	docs, err := h.resumes.Find(c.Request.Context(), store.Filter{OwnerID: userID})
	if err != nil {
		h.loggerFromContext(c).Error("list resumes failed", slog.Any("error", err))
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, newResumeResponse(d))
	}
	c.JSON(http.StatusOK, items)
}

// GetLatestResume 返回用户当前编辑的简历；没有简历时返回默认内容。
func (h *ResumeHandler) GetLatestResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	doc, err := h.findActiveOrLatestResume(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, resumeResponse{
				UserID:  userID,
				Title:   defaultResumeTitle,
				Content: defaultResumeContent(),
			})
			return
		}
		h.loggerFromContext(c).Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "failed to query latest resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*doc))
}

// GetResume 返回指定简历并标记为当前正在编辑。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	doc, userID, ok := h.ownedResume(c)
	if !ok {
		return
	}

	if err := h.setActiveResumeID(c.Request.Context(), userID, &doc.ID); err != nil {
		h.loggerFromContext(c).Error("mark active resume failed", slog.Any("error", err))
		Internal(c, "failed to mark active resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*doc))
}

// UpdateResume 更新指定简历，请求中缺省的字段保持原值，分享状态不受影响。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	doc, userID, ok := h.ownedResume(c)
	if !ok {
		return
	}

	raw, err := readBody(c)
	if err != nil {
		BadRequest(c, "failed to read request body")
		return
	}
	body, err := decodeResumeBody(raw, doc.Content.Data())
	if err != nil {
		h.replyBodyError(c, err)
		return
	}

	ctx := c.Request.Context()
	updated, err := h.resumes.UpdateOne(ctx, store.Filter{ID: doc.ID, OwnerID: userID}, store.Patch{
		Title:      body.Title,
		TemplateID: body.TemplateID,
		Content:    &body.Content,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "resume not found")
			return
		}
		h.loggerFromContext(c).Error("update resume failed", slog.Any("error", err))
		Internal(c, "failed to update resume")
		return
	}

	if err := h.setActiveResumeID(ctx, userID, &updated.ID); err != nil {
		h.loggerFromContext(c).Error("mark active resume failed", slog.Any("error", err))
		Internal(c, "failed to mark active resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*updated))
}

// DeleteResume 删除指定简历。分享令牌随记录释放，导出的 PDF 一并清理。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	resumeID, err := parseResumeID(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("resume_id", uint64(resumeID)),
	)

	deleted, err := h.resumes.DeleteOne(ctx, store.Filter{ID: resumeID, OwnerID: userID})
	if err != nil {
		logger.Error("delete resume failed", slog.Any("error", err))
		Internal(c, "failed to delete resume")
		return
	}
	if !deleted {
		NotFound(c, "resume not found")
		return
	}

	if h.objects != nil {
		if err := h.objects.DeletePrefix(ctx, storage.ExportPrefix(userID, resumeID)); err != nil {
			logger.Warn("delete exported files failed", slog.Any("error", err))
		}
	}

	if err := h.assignLatestResumeAsActive(ctx, userID); err != nil {
		logger.Error("update active resume failed", slog.Any("error", err))
		Internal(c, "failed to update active resume")
		return
	}

	logger.Info("resume deleted")
	c.Status(http.StatusNoContent)
}

// ownedResume 解析路径参数并加载调用方拥有的简历，失败时已写入响应。
func (h *ResumeHandler) ownedResume(c *gin.Context) (*database.Resume, uint, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, 0, false
	}

	doc, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidResumeID):
			BadRequest(c, "invalid resume id")
		case errors.Is(err, store.ErrNotFound):
			NotFound(c, "resume not found")
		default:
			h.loggerFromContext(c).Error("query resume failed", slog.Any("error", err))
			Internal(c, "failed to query resume")
		}
		return nil, 0, false
	}
	return doc, userID, true
}

func (h *ResumeHandler) getResumeForUser(ctx context.Context, idParam string, userID uint) (*database.Resume, error) {
	resumeID, err := parseResumeID(idParam)
	if err != nil {
		return nil, err
	}
	return h.resumes.FindOne(ctx, store.Filter{ID: resumeID, OwnerID: userID})
}

func (h *ResumeHandler) replyBodyError(c *gin.Context, err error) {
	if verr, ok := asValidationError(err); ok {
		ValidationFailed(c, verr)
		return
	}
	h.loggerFromContext(c).Error("validate resume body failed", slog.Any("error", err))
	Internal(c, "internal error")
}

func (h *ResumeHandler) setActiveResumeID(ctx context.Context, userID uint, resumeID *uint) error {
	var value any
	if resumeID != nil {
		value = *resumeID
	}
	return h.db.WithContext(ctx).Model(&database.User{}).
		Where("id = ?", userID).
		Update("active_resume_id", value).Error
}

func (h *ResumeHandler) assignLatestResumeAsActive(ctx context.Context, userID uint) error {
	docs, err := h.resumes.Find(ctx, store.Filter{OwnerID: userID})
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return h.setActiveResumeID(ctx, userID, nil)
	}
	return h.setActiveResumeID(ctx, userID, &docs[0].ID)
}

func (h *ResumeHandler) findActiveOrLatestResume(ctx context.Context, userID uint) (*database.Resume, error) {
	var user database.User
	if err := h.db.WithContext(ctx).
		Select("id", "active_resume_id").
		First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if user.ActiveResumeID != nil {
		doc, err := h.resumes.FindOne(ctx, store.Filter{ID: *user.ActiveResumeID, OwnerID: userID})
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	docs, err := h.resumes.Find(ctx, store.Filter{OwnerID: userID})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		_ = h.setActiveResumeID(ctx, userID, nil)
		return nil, store.ErrNotFound
	}
	if err := h.setActiveResumeID(ctx, userID, &docs[0].ID); err != nil {
		return nil, err
	}
	return &docs[0], nil
}

func (h *ResumeHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func parseResumeID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidResumeID
	}
	return uint(id), nil
}

func readBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeBodyBytes))
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
