package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/abhismart8/resume-builder/internal/api/middleware"
	"github.com/abhismart8/resume-builder/internal/auth"
	"github.com/abhismart8/resume-builder/internal/config"
	"github.com/abhismart8/resume-builder/internal/sharelink"
	"github.com/abhismart8/resume-builder/internal/store"
)

// Dependencies 汇总路由注册所需的外部资源。
type Dependencies struct {
	DB          *gorm.DB
	Enqueuer    TaskEnqueuer
	AuthService *auth.AuthService
	Redis       redis.UniversalClient
	Objects     ObjectStore
	Logger      *slog.Logger
}

// RegisterRoutes 注册 /v1 下的全部路由。
func RegisterRoutes(router *gin.Engine, cfg *config.Config, deps Dependencies) {
	resumes := store.NewResumeStore(deps.DB)
	templates := store.NewTemplateStore(deps.DB)

	resumeHandler := NewResumeHandler(
		deps.DB, deps.Enqueuer, deps.Objects, deps.Logger,
		cfg.API.MaxResumes, cfg.Worker.ExportMaxRetry, cfg.Share.DownloadLinkTTL,
	)
	authHandler := NewAuthHandler(
		deps.DB, deps.AuthService, deps.Redis, deps.Logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, cfg.Auth.LoginLockTTL, cfg.Auth.CookieDomain,
		cfg.API.PublicBaseURL,
	)
	shareHandler := NewShareHandler(
		sharelink.NewManager(resumes, sharelink.WithLogger(deps.Logger)),
		deps.Redis, deps.Logger, cfg.API.PublicBaseURL, cfg.Share.PublicRatePerMinute,
	)
	templateHandler := NewTemplateHandler(templates, deps.Enqueuer, deps.Logger)
	wsHandler := NewWsHandler(deps.Redis, deps.AuthService, deps.Logger, cfg.API.AllowedOrigins)

	authMiddleware := middleware.AuthMiddleware(deps.AuthService)
	passwordGate := middleware.RequirePasswordChangeCompletedMiddleware()

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/verify-email", authHandler.VerifyEmail)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware, passwordGate)
		{
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("/latest", resumeHandler.GetLatestResume)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.POST("/:id/preview", resumeHandler.PreviewResume)
			resumeGroup.GET("/:id/export/html", resumeHandler.ExportHTML)
			resumeGroup.POST("/:id/export/pdf", resumeHandler.ExportPDF)
			resumeGroup.GET("/:id/export/link", resumeHandler.GetDownloadLink)
			resumeGroup.POST("/:id/share", shareHandler.IssueLink)
			resumeGroup.DELETE("/:id/share", shareHandler.RevokeLink)
			resumeGroup.GET("/:id/share", shareHandler.GetLinkStatus)
		}

		renderGroup := v1.Group("/render")
		renderGroup.Use(authMiddleware, passwordGate)
		{
			renderGroup.POST("/preview", resumeHandler.RenderPreview)
			renderGroup.POST("/static", resumeHandler.RenderStatic)
		}

		v1.GET("/public/resume/:token", shareHandler.GetPublicResume)

		v1.GET("/templates", templateHandler.ListTemplates)
		v1.GET("/templates/:templateId", templateHandler.GetTemplate)

		adminGroup := v1.Group("/admin")
		adminGroup.Use(authMiddleware, passwordGate, middleware.RequireAdmin())
		{
			adminGroup.GET("/templates", templateHandler.AdminListTemplates)
			adminGroup.POST("/templates", templateHandler.CreateTemplate)
			adminGroup.PUT("/templates/:templateId", templateHandler.UpdateTemplate)
			adminGroup.DELETE("/templates/:templateId", templateHandler.DeleteTemplate)
			adminGroup.POST("/templates/:templateId/thumbnail", templateHandler.RegenerateThumbnail)
		}
	}
}
