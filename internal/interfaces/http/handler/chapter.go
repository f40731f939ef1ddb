// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"book-writer-api/internal/infrastructure/backend"
	"book-writer-api/internal/interfaces/http/dto"
	"book-writer-api/pkg/errors"
	"book-writer-api/pkg/logger"
)

// ChapterHandler 章节代理处理器
// 章节内容不落地本服务，读取与删除均透传给内容后端，
// 后端状态码与响应体原样中继
type ChapterHandler struct {
	client *backend.Client
}

// NewChapterHandler 创建章节代理处理器
func NewChapterHandler(client *backend.Client) *ChapterHandler {
	return &ChapterHandler{client: client}
}

// GetChapter 读取章节内容
// @Summary 读取章节内容
// @Description 将章节读取请求代理至内容后端并原样中继响应
// @Tags Chapters
// @Produce json
// @Param chapter path int true "章节号（1 起始）"
// @Param project_id query string true "项目 ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chapters/{chapter} [get]
func (h *ChapterHandler) GetChapter(c *gin.Context) {
	h.proxy(c, "GET")
}

// DeleteChapter 删除章节
// @Summary 删除章节
// @Description 将章节删除请求代理至内容后端并原样中继响应
// @Tags Chapters
// @Produce json
// @Param chapter path int true "章节号（1 起始）"
// @Param project_id query string true "项目 ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chapters/{chapter} [delete]
func (h *ChapterHandler) DeleteChapter(c *gin.Context) {
	h.proxy(c, "DELETE")
}

// proxy 校验入参后向后端发起同方法请求
// 章节号与项目 ID 在任何出站调用之前校验，
// 后端未配置时返回 500 配置错误而非请求错误
func (h *ChapterHandler) proxy(c *gin.Context, method string) {
	chapter, err := dto.BindChapterNumber(c)
	if err != nil {
		dto.FromAppError(c, errors.AsAppError(err))
		return
	}

	projectID := dto.BindProjectID(c)
	if projectID == "" {
		dto.FromAppError(c, errors.ErrMissingProjectID)
		return
	}

	// Authorization 已由 AuthPassthrough 中间件注入请求 Context
	ctx := logger.WithContext(c.Request.Context(), logger.ProjectIDKey, projectID)

	resp, err := h.client.Do(ctx, method, backend.ChapterPath(projectID, chapter), nil, nil)
	if err != nil {
		h.respondError(c, ctx, err)
		return
	}

	// 成功与失败响应均按后端原始状态码中继
	c.Data(resp.Status, "application/json", resp.RelayBody())
}

func (h *ChapterHandler) respondError(c *gin.Context, ctx context.Context, err error) {
	appErr := errors.AsAppError(err)
	if appErr.HTTPStatus >= 500 {
		logger.Error(ctx, "chapter proxy failed", err)
	}
	dto.FromAppError(c, appErr)
}
