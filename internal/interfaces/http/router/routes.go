// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"book-writer-api/internal/interfaces/http/handler"
)

// RegisterRoutes 注册业务路由
func RegisterRoutes(
	engine *gin.Engine,
	referenceHandler *handler.ReferenceHandler,
	chapterHandler *handler.ChapterHandler,
) {
	// 参考文件管理
	references := engine.Group("/references")
	{
		references.GET("", referenceHandler.ListReferences)
		references.GET("/:filename", referenceHandler.GetReference)
		references.PUT("/:filename", referenceHandler.UpdateReference)
	}

	// 章节代理
	chapters := engine.Group("/chapters")
	{
		chapters.GET("/:chapter", chapterHandler.GetChapter)
		chapters.DELETE("/:chapter", chapterHandler.DeleteChapter)
	}
}
