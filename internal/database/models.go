package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/style"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 导出状态。
const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Email              string   `gorm:"uniqueIndex;size:255"`
	PasswordHash       string   `gorm:"size:255"`
	Role               string   `gorm:"size:16;not null;default:user"`
	MustChangePassword bool     `gorm:"not null;default:false"`
	EmailVerified      bool     `gorm:"not null;default:false"`
	ActiveResumeID     *uint    `gorm:"index"`
	Resumes            []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// IsAdmin 判断是否为管理员。
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// EmailVerification 是注册时签发的一次性邮箱验证令牌。
type EmailVerification struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string    `gorm:"index;size:255;not null"`
	Token     string    `gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Verified  bool      `gorm:"not null;default:false"`
}

// Expired 判断令牌在 now 时是否已过期。
func (v EmailVerification) Expired(now time.Time) bool { return now.After(v.ExpiresAt) }

// Resume 表示用户创建的简历。删除为物理删除，分享令牌随记录一起释放。
// ShareLinkToken 只在非空时参与唯一约束。
type Resume struct {
	ID             uint                               `gorm:"primaryKey"`
	CreatedAt      time.Time                          `gorm:"index"`
	UpdatedAt      time.Time
	UserID         uint                               `gorm:"index;not null"`
	User           User                               `gorm:"constraint:OnDelete:CASCADE"`
	Title          string                             `gorm:"size:255"`
	TemplateID     string                             `gorm:"size:128;index"`
	Content        datatypes.JSONType[resume.Content] `gorm:"not null"`
	ShareLinkToken *string                            `gorm:"size:64;uniqueIndex:idx_resumes_share_link_token,where:share_link_token IS NOT NULL"`
	IsPublic       bool                               `gorm:"not null;default:false"`
	PdfObjectKey   string                             `gorm:"size:512"`
	ExportStatus   string                             `gorm:"size:32"`
}

// Template 表示目录中的简历模板，Slug 是对外暴露的稳定 ID。
// IsActive 不设数据库默认值，创建时必须显式赋值。
type Template struct {
	ID          uint                               `gorm:"primaryKey"`
	CreatedAt   time.Time                          `gorm:"index"`
	UpdatedAt   time.Time
	Slug        string                             `gorm:"uniqueIndex;size:128;not null"`
	Name        string                             `gorm:"size:255;not null"`
	Description string                             `gorm:"size:1024"`
	Category    string                             `gorm:"size:64;not null"`
	Thumbnail   string                             `gorm:"size:512"`
	IsActive    bool                               `gorm:"not null"`
	SortOrder   int                                `gorm:"index;not null"`
	Styles      datatypes.JSONType[style.Config]   `gorm:"not null"`
	PreviewData datatypes.JSONType[resume.Content] `gorm:"not null"`
}

// DefaultTemplateCategory 是未指定分类时的取值。
const DefaultTemplateCategory = "General"
