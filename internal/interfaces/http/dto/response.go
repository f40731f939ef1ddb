// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"github.com/gin-gonic/gin"

	"book-writer-api/pkg/errors"
)

// ErrorResponse 错误响应结构
// 至少携带一个人类可读字段，状态码编码错误类别
type ErrorResponse struct {
	Error   string `json:"error"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

// ErrorWithDetail 返回带详情的错误响应
func ErrorWithDetail(c *gin.Context, httpCode int, message, detail string) {
	c.JSON(httpCode, ErrorResponse{
		Error:   message,
		Detail:  detail,
		TraceID: c.GetString("trace_id"),
	})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// NotFound 返回 404 错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// InternalError 返回 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// FromAppError 将应用错误映射为 HTTP 响应
// 上游错误以 {detail} 形式按后端原始状态码中继，
// 其余错误携带错误消息与可选诊断详情
func FromAppError(c *gin.Context, appErr *errors.AppError) {
	if appErr.Code == errors.CodeUpstreamError {
		c.JSON(appErr.HTTPStatus, gin.H{"detail": appErr.Detail})
		return
	}

	detail := appErr.Detail
	if detail == "" && appErr.Err != nil {
		detail = appErr.Err.Error()
	}
	if detail != "" {
		ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, detail)
		return
	}
	Error(c, appErr.HTTPStatus, appErr.Message)
}
