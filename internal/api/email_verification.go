package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abhismart8/resume-builder/internal/database"
)

var errAlreadyVerified = errors.New("email already verified")

// verificationLink 拼接邮箱验证地址。
func (h *AuthHandler) verificationLink(token string) string {
	return h.publicBaseURL + "/v1/auth/verify-email?token=" + url.QueryEscape(token)
}

// sendVerification 投递验证链接。目前只写入日志。
func (h *AuthHandler) sendVerification(logger *slog.Logger, email, token string) {
	logger.Info("verification link issued",
		slog.String("email", email),
		slog.String("link", h.verificationLink(token)),
	)
}

// VerifyEmail 消费验证令牌并把对应账号标记为已验证。
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		BadRequest(c, "invalid or missing verification token")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c)

	var v database.EmailVerification
	if err := h.db.WithContext(ctx).Where("token = ?", token).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "verification token not found")
			return
		}
		logger.Error("lookup verification token failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if v.Expired(time.Now()) {
		if err := h.db.WithContext(ctx).Delete(&v).Error; err != nil {
			logger.Warn("delete expired verification token failed", slog.Any("error", err))
		}
		BadRequest(c, "verification token has expired")
		return
	}
	if v.Verified {
		BadRequest(c, "email already verified")
		return
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&database.EmailVerification{}).
			Where("id = ? AND verified = ?", v.ID, false).
			Update("verified", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyVerified
		}
		return tx.Model(&database.User{}).Where("email = ?", v.Email).Update("email_verified", true).Error
	})
	if err != nil {
		if errors.Is(err, errAlreadyVerified) {
			BadRequest(c, "email already verified")
			return
		}
		logger.Error("mark email verified failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("email verified", slog.String("email", v.Email))
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully. You can now log in."})
}
