package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/resume"
)

// Filter 描述简历查询条件，零值字段不参与过滤。
type Filter struct {
	ID         uint
	OwnerID    uint
	ShareToken string
	PublicOnly bool
}

func (f Filter) empty() bool {
	return f.ID == 0 && f.OwnerID == 0 && f.ShareToken == "" && !f.PublicOnly
}

func (f Filter) scope(db *gorm.DB) *gorm.DB {
	if f.ID != 0 {
		db = db.Where("id = ?", f.ID)
	}
	if f.OwnerID != 0 {
		db = db.Where("user_id = ?", f.OwnerID)
	}
	if f.ShareToken != "" {
		db = db.Where("share_link_token = ?", f.ShareToken)
	}
	if f.PublicOnly {
		db = db.Where("is_public = ?", true)
	}
	return db
}

// Patch 描述一次部分更新，nil 字段保持不变。
// 分享字段只能通过 ShareUpdate 设置。
type Patch struct {
	Title        *string
	TemplateID   *string
	Content      *resume.Content
	PdfObjectKey *string
	ExportStatus *string

	share *shareState
}

type shareState struct {
	token  *string
	public bool
}

// ShareUpdate 构造只修改分享状态的 Patch，token 为 nil 表示清除。
func ShareUpdate(token *string, public bool) Patch {
	return Patch{share: &shareState{token: token, public: public}}
}

func (p Patch) columns() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.TemplateID != nil {
		m["template_id"] = *p.TemplateID
	}
	if p.Content != nil {
		m["content"] = datatypes.NewJSONType(*p.Content)
	}
	if p.PdfObjectKey != nil {
		m["pdf_object_key"] = *p.PdfObjectKey
	}
	if p.ExportStatus != nil {
		m["export_status"] = *p.ExportStatus
	}
	if p.share != nil {
		if p.share.token == nil {
			m["share_link_token"] = nil
		} else {
			m["share_link_token"] = *p.share.token
		}
		m["is_public"] = p.share.public
	}
	return m
}

// ResumeStore 基于 GORM 的简历存储，所有写操作都以 Filter 为条件原子执行。
type ResumeStore struct {
	db *gorm.DB
}

// NewResumeStore 构造 ResumeStore。
func NewResumeStore(db *gorm.DB) *ResumeStore {
	return &ResumeStore{db: db}
}

// Find 按创建时间倒序返回匹配的简历。
func (s *ResumeStore) Find(ctx context.Context, f Filter) ([]database.Resume, error) {
	var out []database.Resume
	if err := s.db.WithContext(ctx).Scopes(f.scope).Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find resumes: %w", err)
	}
	return out, nil
}

// FindOne 返回第一条匹配记录，不存在时返回 ErrNotFound。
func (s *ResumeStore) FindOne(ctx context.Context, f Filter) (*database.Resume, error) {
	if f.empty() {
		return nil, ErrEmptyFilter
	}
	var r database.Resume
	if err := s.db.WithContext(ctx).Scopes(f.scope).Order("id").Take(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// Count 统计某用户的简历数量。
func (s *ResumeStore) Count(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&database.Resume{}).Where("user_id = ?", ownerID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count resumes: %w", err)
	}
	return n, nil
}

// Insert 创建简历。新记录总是私有且没有分享令牌，忽略调用方传入的分享字段。
func (s *ResumeStore) Insert(ctx context.Context, r *database.Resume) error {
	r.ID = 0
	r.ShareLinkToken = nil
	r.IsPublic = false
	if err := s.db.WithContext(ctx).Omit("User").Create(r).Error; err != nil {
		return translate(err)
	}
	return nil
}

// UpdateOne 以 Filter 为条件执行单条更新并返回更新后的记录。
// 没有匹配行时返回 ErrNotFound，违反唯一约束时返回 ErrDuplicate。
func (s *ResumeStore) UpdateOne(ctx context.Context, f Filter, p Patch) (*database.Resume, error) {
	if f.empty() {
		return nil, ErrEmptyFilter
	}
	cols := p.columns()
	if len(cols) == 0 {
		return s.FindOne(ctx, f)
	}

	res := s.db.WithContext(ctx).Model(&database.Resume{}).Scopes(f.scope).Updates(cols)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	// 分享字段可能已被修改，重读时只按主键与属主定位。
	reload := Filter{ID: f.ID, OwnerID: f.OwnerID}
	if reload.empty() {
		return nil, nil
	}
	return s.FindOne(ctx, reload)
}

// DeleteOne 删除匹配的第一条记录，返回是否删除。
func (s *ResumeStore) DeleteOne(ctx context.Context, f Filter) (bool, error) {
	if f.empty() {
		return false, ErrEmptyFilter
	}
	target, err := s.FindOne(ctx, f)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	res := s.db.WithContext(ctx).Scopes(f.scope).Where("id = ?", target.ID).Delete(&database.Resume{})
	if res.Error != nil {
		return false, fmt.Errorf("delete resume: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
