// Package fsstore 提供基于本地文件系统的参考文件存储实现
package fsstore

import (
	"path/filepath"

	"book-writer-api/internal/domain/entity"
)

// PathResolver 项目作用域路径解析器
// (projectID, filename) -> {root}/{projectID}/references/{filename}
// legacy 模式下退化为 {root}/{filename}，无项目概念
type PathResolver struct {
	root   string
	scoped bool
}

// NewPathResolver 创建路径解析器
func NewPathResolver(root string, scoped bool) *PathResolver {
	return &PathResolver{
		root:   root,
		scoped: scoped,
	}
}

// Root 返回存储根目录
func (r *PathResolver) Root() string {
	return r.root
}

// Dir 解析项目的参考文件目录
func (r *PathResolver) Dir(projectID string) (string, error) {
	if !r.scoped {
		return r.root, nil
	}
	if err := entity.ValidateProjectID(projectID); err != nil {
		return "", err
	}
	return filepath.Join(r.root, projectID, "references"), nil
}

// Resolve 解析参考文件的绝对路径
func (r *PathResolver) Resolve(projectID, filename string) (string, error) {
	if err := entity.ValidateFilename(filename); err != nil {
		return "", err
	}
	dir, err := r.Dir(projectID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filename), nil
}
