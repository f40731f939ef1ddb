// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"book-writer-api/internal/domain/entity"
	"book-writer-api/internal/domain/repository"
	"book-writer-api/internal/interfaces/http/dto"
	"book-writer-api/pkg/errors"
	"book-writer-api/pkg/logger"
)

// ReferenceHandler 参考文件处理器
// 只依赖 ReferenceStore 接口，文件系统实现与远端代理实现
// 在启动时按配置注入，校验逻辑不再按存储实现重复
type ReferenceHandler struct {
	store repository.ReferenceStore
}

// NewReferenceHandler 创建参考文件处理器
func NewReferenceHandler(store repository.ReferenceStore) *ReferenceHandler {
	return &ReferenceHandler{store: store}
}

// ListReferences 获取参考文件列表
// @Summary 获取参考文件列表
// @Description 枚举项目的参考 markdown 文件，目录不存在视为空项目
// @Tags References
// @Produce json
// @Param project_id query string false "项目 ID（存储模式相关）"
// @Success 200 {object} dto.ListReferencesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /references [get]
func (h *ReferenceHandler) ListReferences(c *gin.Context) {
	ctx := h.requestContext(c)
	projectID := dto.BindProjectID(c)

	infos, err := h.store.List(ctx, projectID)
	if err != nil {
		h.respondError(c, ctx, err, "failed to list references")
		return
	}

	c.JSON(200, dto.ToListReferencesResponse(infos))
}

// GetReference 读取参考文件
// @Summary 读取参考文件
// @Description 读取单个参考文件的内容与元数据
// @Tags References
// @Produce json
// @Param filename path string true "文件名（.md）"
// @Param project_id query string false "项目 ID（存储模式相关）"
// @Success 200 {object} dto.GetReferenceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /references/{filename} [get]
func (h *ReferenceHandler) GetReference(c *gin.Context) {
	ctx := h.requestContext(c)
	filename := dto.BindFilename(c)

	// 文件名在任何 I/O 或出站调用之前校验
	if err := entity.ValidateFilename(filename); err != nil {
		dto.FromAppError(c, errors.AsAppError(err))
		return
	}

	file, err := h.store.Get(ctx, dto.BindProjectID(c), filename)
	if err != nil {
		h.respondError(c, ctx, err, "failed to get reference")
		return
	}

	c.JSON(200, dto.ToGetReferenceResponse(file))
}

// UpdateReference 更新参考文件
// @Summary 更新参考文件
// @Description 整体覆写已存在的参考文件，目标不存在时返回 404，不会隐式创建
// @Tags References
// @Accept json
// @Produce json
// @Param filename path string true "文件名（.md）"
// @Param project_id query string false "项目 ID（存储模式相关）"
// @Param body body dto.UpdateReferenceRequest true "新的文件内容"
// @Success 200 {object} dto.UpdateReferenceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /references/{filename} [put]
func (h *ReferenceHandler) UpdateReference(c *gin.Context) {
	ctx := h.requestContext(c)
	filename := dto.BindFilename(c)

	if err := entity.ValidateFilename(filename); err != nil {
		dto.FromAppError(c, errors.AsAppError(err))
		return
	}

	var req dto.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Content == "" {
		dto.FromAppError(c, errors.ErrEmptyContent)
		return
	}

	info, err := h.store.Update(ctx, dto.BindProjectID(c), filename, req.Content)
	if err != nil {
		h.respondError(c, ctx, err, "failed to update reference")
		return
	}

	c.JSON(200, dto.ToUpdateReferenceResponse(info))
}

// requestContext 构建带存储与项目标识的请求上下文
func (h *ReferenceHandler) requestContext(c *gin.Context) context.Context {
	ctx := logger.WithContext(c.Request.Context(), logger.StoreKey, h.store.Name())
	if projectID := dto.BindProjectID(c); projectID != "" {
		ctx = logger.WithContext(ctx, logger.ProjectIDKey, projectID)
	}
	return ctx
}

// respondError 统一错误映射
// 预期错误按分类映射状态码，意外错误以 500 返回并携带底层消息便于排障
func (h *ReferenceHandler) respondError(c *gin.Context, ctx context.Context, err error, logMsg string) {
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		if appErr.HTTPStatus >= 500 {
			logger.Error(ctx, logMsg, err)
		}
		dto.FromAppError(c, appErr)
		return
	}
	logger.Error(ctx, logMsg, err)
	dto.ErrorWithDetail(c, 500, logMsg, err.Error())
}
