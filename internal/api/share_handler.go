package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhismart8/resume-builder/internal/api/middleware"
	"github.com/abhismart8/resume-builder/internal/sharelink"
)

// ShareHandler 负责简历的公开分享与公开访问。
type ShareHandler struct {
	manager       *sharelink.Manager
	counter       redisRateCounter
	logger        *slog.Logger
	publicBaseURL string
	publicRate    int
}

// NewShareHandler 构造 ShareHandler。publicRate 是每个 IP 每分钟的公开访问上限，0 表示不限。
func NewShareHandler(manager *sharelink.Manager, counter redisRateCounter, logger *slog.Logger, publicBaseURL string, publicRate int) *ShareHandler {
	return &ShareHandler{
		manager:       manager,
		counter:       counter,
		logger:        logger,
		publicBaseURL: publicBaseURL,
		publicRate:    publicRate,
	}
}

type shareStatusResponse struct {
	ShareableLink *string `json:"shareableLink"`
	IsPublic      bool    `json:"isPublic"`
	ShareURL      *string `json:"shareUrl"`
}

func (h *ShareHandler) statusResponse(token *string, public bool) shareStatusResponse {
	resp := shareStatusResponse{ShareableLink: token, IsPublic: public}
	if token != nil && public {
		u := h.shareURL(*token)
		resp.ShareURL = &u
	}
	return resp
}

func (h *ShareHandler) shareURL(token string) string {
	return h.publicBaseURL + "/resume/share/" + token
}

// IssueLink 为简历签发新的分享令牌，已公开的简历会轮换令牌。
func (h *ShareHandler) IssueLink(c *gin.Context) {
	userID, resumeID, ok := h.params(c)
	if !ok {
		return
	}

	token, err := h.manager.IssueLink(c.Request.Context(), resumeID, userID)
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.statusResponse(&token, true))
}

// RevokeLink 撤销分享，重复撤销同样返回成功。
func (h *ShareHandler) RevokeLink(c *gin.Context) {
	userID, resumeID, ok := h.params(c)
	if !ok {
		return
	}

	if err := h.manager.RevokeLink(c.Request.Context(), resumeID, userID); err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.statusResponse(nil, false))
}

// GetLinkStatus 返回简历当前的分享状态。
func (h *ShareHandler) GetLinkStatus(c *gin.Context) {
	userID, resumeID, ok := h.params(c)
	if !ok {
		return
	}

	st, err := h.manager.GetLinkStatus(c.Request.Context(), resumeID, userID)
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.statusResponse(st.Token, st.IsPublic))
}

// GetPublicResume 是无需登录的公开访问入口，按客户端 IP 限流。
func (h *ShareHandler) GetPublicResume(c *gin.Context) {
	ctx := c.Request.Context()
	if overLimit(ctx, h.counter, "rate:public:"+c.ClientIP(), h.publicRate, time.Minute) {
		TooManyRequests(c, "rate limit exceeded")
		return
	}

	token := c.Param("token")
	if token == "" {
		BadRequest(c, "Invalid share link")
		return
	}

	doc, err := h.manager.ResolvePublic(ctx, token)
	if err != nil {
		if errors.Is(err, sharelink.ErrNotFound) {
			NotFound(c, "Resume not found or not shared publicly")
			return
		}
		h.loggerFromContext(c).Error("resolve public resume failed", slog.Any("error", err))
		Internal(c, "Internal server error")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, newPublicResumeResponse(*doc))
}

func (h *ShareHandler) params(c *gin.Context) (uint, uint, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return 0, 0, false
	}
	resumeID, err := parseResumeID(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid resume id")
		return 0, 0, false
	}
	return userID, resumeID, true
}

func (h *ShareHandler) replyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sharelink.ErrNotFound):
		NotFound(c, "resume not found")
	case errors.Is(err, sharelink.ErrForbidden):
		Forbidden(c, "access denied")
	case errors.Is(err, sharelink.ErrConflictTransient):
		ServiceUnavailable(c, "could not generate a unique share link, please try again")
	default:
		h.loggerFromContext(c).Error("share link operation failed", slog.Any("error", err))
		Internal(c, "internal error")
	}
}

func (h *ShareHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
