// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess       ErrorCode = "0"
	CodeUnknown       ErrorCode = "1000"
	CodeInvalidParam  ErrorCode = "1001"
	CodeNotFound      ErrorCode = "1002"
	CodeInternalError ErrorCode = "1003"

	// 请求校验错误 (2xxx)
	CodeMissingProjectID  ErrorCode = "2001"
	CodeInvalidFilename   ErrorCode = "2002"
	CodeEmptyContent      ErrorCode = "2003"
	CodeInvalidChapterNum ErrorCode = "2004"

	// 资源错误 (3xxx)
	CodeFileNotFound    ErrorCode = "3001"
	CodeChapterNotFound ErrorCode = "3002"

	// 后端代理错误 (5xxx)
	CodeBackendNotConfigured ErrorCode = "5001"
	CodeUpstreamError        ErrorCode = "5002"
	CodeStorageError         ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// NewUpstream 创建携带后端原始状态码的代理错误
// 状态码原样透传，调用方得以区分后端的 404/409/500 语义
func NewUpstream(status int, detail string) *AppError {
	return &AppError{
		Code:       CodeUpstreamError,
		Message:    "upstream request failed",
		Detail:     detail,
		HTTPStatus: status,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeMissingProjectID, CodeInvalidFilename, CodeEmptyContent, CodeInvalidChapterNum:
		return http.StatusBadRequest
	case CodeNotFound, CodeFileNotFound, CodeChapterNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam  = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound      = New(CodeNotFound, "resource not found")
	ErrInternalError = New(CodeInternalError, "internal server error")

	ErrMissingProjectID  = New(CodeMissingProjectID, "project_id is required")
	ErrInvalidFilename   = New(CodeInvalidFilename, "filename must end with .md")
	ErrEmptyContent      = New(CodeEmptyContent, "content must not be empty")
	ErrInvalidChapterNum = New(CodeInvalidChapterNum, "chapter must be a positive integer")

	ErrFileNotFound    = New(CodeFileNotFound, "reference file not found")
	ErrChapterNotFound = New(CodeChapterNotFound, "chapter not found")

	ErrBackendNotConfigured = New(CodeBackendNotConfigured, "Backend URL not configured")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
