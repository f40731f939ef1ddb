// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"book-writer-api/pkg/errors"
)

// BindProjectID 从查询参数绑定项目 ID
func BindProjectID(c *gin.Context) string {
	return strings.TrimSpace(c.Query("project_id"))
}

// BindFilename 从 URI 绑定参考文件名
func BindFilename(c *gin.Context) string {
	return c.Param("filename")
}

// BindChapterNumber 从 URI 绑定章节号
// 章节号为 1 起始的正整数，0、负数与非数字值
// 在发起任何出站调用之前即被拒绝
func BindChapterNumber(c *gin.Context) (int, error) {
	raw := c.Param("chapter")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.ErrInvalidChapterNum
	}
	return n, nil
}
