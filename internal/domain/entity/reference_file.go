// Package entity 定义领域实体
package entity

import (
	"regexp"
	"strings"
	"time"

	"book-writer-api/pkg/errors"
)

// MarkdownSuffix 参考文件统一的扩展名
const MarkdownSuffix = ".md"

// 路径组件白名单：字母数字开头，仅允许字母数字与 . _ -
// 不含路径分隔符，从根上杜绝目录穿越
var pathComponentRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ReferenceFileInfo 参考文件元数据
type ReferenceFileInfo struct {
	Name         string    `json:"name"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// ReferenceFile 参考文件实体
// 以 (projectID, name) 唯一标识，内容为 UTF-8 markdown 文本
type ReferenceFile struct {
	Name         string    `json:"name"`
	Content      string    `json:"content"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// Info 返回文件元数据
func (f *ReferenceFile) Info() ReferenceFileInfo {
	return ReferenceFileInfo{
		Name:         f.Name,
		LastModified: f.LastModified,
		Size:         f.Size,
	}
}

// IsMarkdownName 检查文件名是否携带 markdown 扩展名
func IsMarkdownName(name string) bool {
	return strings.HasSuffix(name, MarkdownSuffix) && len(name) > len(MarkdownSuffix)
}

// ValidateFilename 校验参考文件名
// 必须以 .md 结尾且通过白名单，任何违例在 I/O 之前拒绝
func ValidateFilename(filename string) error {
	if !IsMarkdownName(filename) {
		return errors.ErrInvalidFilename
	}
	if !pathComponentRe.MatchString(filename) || strings.Contains(filename, "..") {
		return errors.New(errors.CodeInvalidFilename, "filename contains invalid characters")
	}
	return nil
}

// ValidateProjectID 校验项目 ID
// 空值与含路径分隔符的值均在任何 I/O 之前拒绝
func ValidateProjectID(projectID string) error {
	if strings.TrimSpace(projectID) == "" {
		return errors.ErrMissingProjectID
	}
	if !pathComponentRe.MatchString(projectID) || strings.Contains(projectID, "..") {
		return errors.New(errors.CodeInvalidParam, "project_id contains invalid characters")
	}
	return nil
}
