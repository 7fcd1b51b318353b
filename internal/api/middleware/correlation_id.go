package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationIDHeader 是请求与响应中携带 Correlation ID 的头。
const CorrelationIDHeader = "X-Correlation-ID"

const correlationIDKey = "correlationID"

// 客户端传入的 ID 只接受短的安全字符集。
var correlationIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// CorrelationIDMiddleware 复用合法的客户端 ID，否则生成新的 UUID。
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if !correlationIDPattern.MatchString(id) {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)
		c.Next()
	}
}

// GetCorrelationID 返回当前请求的 Correlation ID，未经过中间件时为空。
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(correlationIDKey)
}
