package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 表示过滤条件下没有匹配记录。
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate 表示写入违反唯一约束。
	ErrDuplicate = errors.New("store: duplicate key")
	// ErrEmptyFilter 拒绝不带条件的更新或删除。
	ErrEmptyFilter = errors.New("store: empty filter")
)

const pgUniqueViolation = "23505"

// translate 把驱动层错误归一为本包的哨兵错误。
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if IsUniqueViolation(err) {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}

// IsUniqueViolation 识别 gorm、PostgreSQL 与 SQLite 的唯一约束冲突。
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicate) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
