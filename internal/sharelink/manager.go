package sharelink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/metrics"
	"github.com/abhismart8/resume-builder/internal/store"
)

var (
	// ErrNotFound 表示简历不存在，或公开路径上令牌无效、已撤销。
	ErrNotFound = errors.New("sharelink: not found")
	// ErrForbidden 表示简历存在但不属于调用方。
	ErrForbidden = errors.New("sharelink: forbidden")
	// ErrConflictTransient 表示重试后令牌仍然冲突，调用方可稍后再试。
	ErrConflictTransient = errors.New("sharelink: token conflict, try again")
)

// Store 是 Manager 依赖的存储操作。
type Store interface {
	FindOne(ctx context.Context, f store.Filter) (*database.Resume, error)
	UpdateOne(ctx context.Context, f store.Filter, p store.Patch) (*database.Resume, error)
}

// Status 是简历当前的分享状态。
type Status struct {
	Token    *string
	IsPublic bool
}

// Manager 管理简历的公开状态：Private（无令牌）与 Public（有令牌且公开）。
// 令牌唯一性由存储层的部分唯一索引保证，冲突时只重试一次。
type Manager struct {
	store    Store
	newToken TokenFunc
	logger   *slog.Logger
}

// Option 调整 Manager 的行为。
type Option func(*Manager)

// WithTokenFunc 替换令牌生成函数。
func WithTokenFunc(f TokenFunc) Option {
	return func(m *Manager) { m.newToken = f }
}

// WithLogger 设置日志记录器。
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager 构造 Manager。
func NewManager(s Store, opts ...Option) *Manager {
	m := &Manager{store: s, newToken: NewToken, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IssueLink 为调用方拥有的简历签发新令牌并设为公开。已公开的简历会轮换令牌。
// 写入以 id 与属主为条件；写入后按令牌重读确认落库。
func (m *Manager) IssueLink(ctx context.Context, resumeID, ownerID uint) (string, error) {
	owned := store.Filter{ID: resumeID, OwnerID: ownerID}
	for attempt := 1; attempt <= 2; attempt++ {
		token, err := m.newToken()
		if err != nil {
			return "", fmt.Errorf("generate share token: %w", err)
		}

		_, err = m.store.UpdateOne(ctx, owned, store.ShareUpdate(&token, true))
		switch {
		case err == nil:
			if err := m.confirm(ctx, resumeID, token); err != nil {
				return "", err
			}
			metrics.ObserveShareEvent(metrics.ShareIssued)
			m.logger.Info("share link issued",
				slog.Uint64("resume_id", uint64(resumeID)),
				slog.Int("attempt", attempt),
			)
			return token, nil
		case errors.Is(err, store.ErrDuplicate):
			metrics.ObserveShareEvent(metrics.ShareTokenCollision)
			m.logger.Warn("share token collision",
				slog.Uint64("resume_id", uint64(resumeID)),
				slog.Int("attempt", attempt),
			)
			continue
		case errors.Is(err, store.ErrNotFound):
			return "", m.missing(ctx, resumeID)
		default:
			return "", fmt.Errorf("persist share token: %w", err)
		}
	}
	metrics.ObserveShareEvent(metrics.ShareRetryExhausted)
	return "", ErrConflictTransient
}

func (m *Manager) confirm(ctx context.Context, resumeID uint, token string) error {
	got, err := m.store.FindOne(ctx, store.Filter{ShareToken: token, PublicOnly: true})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("share token for resume %d not visible after write", resumeID)
		}
		return fmt.Errorf("confirm share token: %w", err)
	}
	if got.ID != resumeID {
		return fmt.Errorf("share token bound to resume %d, expected %d", got.ID, resumeID)
	}
	return nil
}

// RevokeLink 清除令牌并设为私有。对已私有的简历重复调用同样成功。
func (m *Manager) RevokeLink(ctx context.Context, resumeID, ownerID uint) error {
	_, err := m.store.UpdateOne(ctx, store.Filter{ID: resumeID, OwnerID: ownerID}, store.ShareUpdate(nil, false))
	switch {
	case err == nil:
		metrics.ObserveShareEvent(metrics.ShareRevoked)
		m.logger.Info("share link revoked", slog.Uint64("resume_id", uint64(resumeID)))
		return nil
	case errors.Is(err, store.ErrNotFound):
		return m.missing(ctx, resumeID)
	default:
		return fmt.Errorf("revoke share token: %w", err)
	}
}

// ResolvePublic 是唯一不校验属主的读路径：令牌匹配且 is_public 为真才返回。
func (m *Manager) ResolvePublic(ctx context.Context, token string) (*database.Resume, error) {
	if token == "" {
		metrics.ObserveShareEvent(metrics.SharePublicMiss)
		return nil, ErrNotFound
	}
	r, err := m.store.FindOne(ctx, store.Filter{ShareToken: token, PublicOnly: true})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.ObserveShareEvent(metrics.SharePublicMiss)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve share token: %w", err)
	}
	metrics.ObserveShareEvent(metrics.SharePublicHit)
	return r, nil
}

// GetLinkStatus 返回调用方简历的分享状态。
func (m *Manager) GetLinkStatus(ctx context.Context, resumeID, ownerID uint) (Status, error) {
	r, err := m.store.FindOne(ctx, store.Filter{ID: resumeID, OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Status{}, m.missing(ctx, resumeID)
		}
		return Status{}, fmt.Errorf("load share status: %w", err)
	}
	return Status{Token: r.ShareLinkToken, IsPublic: r.IsPublic}, nil
}

// missing 区分简历不存在与不属于调用方。
func (m *Manager) missing(ctx context.Context, resumeID uint) error {
	_, err := m.store.FindOne(ctx, store.Filter{ID: resumeID})
	switch {
	case err == nil:
		return ErrForbidden
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("lookup resume: %w", err)
	}
}
