package sharelink

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes 是分享令牌的随机字节数。
const TokenBytes = 16

// TokenFunc 生成新的分享令牌。
type TokenFunc func() (string, error)

// NewToken 返回 16 字节随机数的十六进制编码。
func NewToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
