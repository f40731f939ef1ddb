// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"book-writer-api/internal/domain/entity"
)

// ReferenceStore 参考文件存储接口
// 文件系统实现与远端代理实现共用同一契约，
// 路由层只依赖本接口，存储实现在启动时按配置选定
type ReferenceStore interface {
	// List 枚举项目下的参考文件，目录不存在视为空项目而非错误，
	// 结果按文件名升序排列
	List(ctx context.Context, projectID string) ([]entity.ReferenceFileInfo, error)

	// Get 读取单个参考文件的内容与元数据
	Get(ctx context.Context, projectID, filename string) (*entity.ReferenceFile, error)

	// Update 整体覆写已存在的参考文件并返回写后元数据，
	// 目标不存在时报错，绝不隐式创建
	Update(ctx context.Context, projectID, filename, content string) (*entity.ReferenceFileInfo, error)

	// Name 返回存储实现标识，用于日志与指标
	Name() string
}
