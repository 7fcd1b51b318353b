package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abhismart8/resume-builder/internal/database"
)

// TemplateStore 是模板目录。
type TemplateStore struct {
	db *gorm.DB
}

// NewTemplateStore 构造 TemplateStore。
func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// GetByID 按 Slug 查询模板，不区分是否启用。
func (s *TemplateStore) GetByID(ctx context.Context, slug string) (*database.Template, error) {
	var t database.Template
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).Take(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// ListActive 返回启用的模板，按 sort_order 升序、创建时间倒序。
func (s *TemplateStore) ListActive(ctx context.Context) ([]database.Template, error) {
	var out []database.Template
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list active templates: %w", err)
	}
	return out, nil
}

// ListAll 返回全部模板，供管理端使用。
func (s *TemplateStore) ListAll(ctx context.Context) ([]database.Template, error) {
	var out []database.Template
	if err := s.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

// Create 新建模板，Slug 冲突时返回 ErrDuplicate。
func (s *TemplateStore) Create(ctx context.Context, t *database.Template) error {
	if t.Category == "" {
		t.Category = database.DefaultTemplateCategory
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update 以 Slug 为条件更新列并返回最新记录。
func (s *TemplateStore) Update(ctx context.Context, slug string, columns map[string]any) (*database.Template, error) {
	if len(columns) > 0 {
		res := s.db.WithContext(ctx).Model(&database.Template{}).Where("slug = ?", slug).Updates(columns)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetByID(ctx, slug)
}

// Delete 删除模板，返回是否存在。
func (s *TemplateStore) Delete(ctx context.Context, slug string) (bool, error) {
	res := s.db.WithContext(ctx).Where("slug = ?", slug).Delete(&database.Template{})
	if res.Error != nil {
		return false, fmt.Errorf("delete template: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReplaceAll 在一个事务中清空目录并写入 templates。
func (s *TemplateStore) ReplaceAll(ctx context.Context, templates []database.Template) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&database.Template{}).Error; err != nil {
			return fmt.Errorf("clear templates: %w", err)
		}
		if len(templates) == 0 {
			return nil
		}
		if err := tx.Create(&templates).Error; err != nil {
			return translate(err)
		}
		return nil
	})
}
