package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// VerificationTokenBytes 是邮箱验证令牌的随机字节数。
	VerificationTokenBytes = 32
	// VerificationTTL 是验证令牌的有效期。
	VerificationTTL = 24 * time.Hour
)

// NewVerificationToken 返回 32 字节随机数的十六进制编码。
func NewVerificationToken() (string, error) {
	b := make([]byte, VerificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
