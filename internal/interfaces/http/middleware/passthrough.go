// Package middleware 提供 HTTP 中间件
package middleware

import (
	"github.com/gin-gonic/gin"

	"book-writer-api/internal/infrastructure/backend"
)

// AuthPassthrough 将入站 Authorization 头注入请求 Context
// 本服务不校验凭证，头部内容对代理层不透明并原样转发至后端
func AuthPassthrough() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth := c.GetHeader("Authorization"); auth != "" {
			ctx := backend.WithAuthorization(c.Request.Context(), auth)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
