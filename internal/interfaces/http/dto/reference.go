// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"book-writer-api/internal/domain/entity"
)

// UpdateReferenceRequest 更新参考文件请求
type UpdateReferenceRequest struct {
	Content string `json:"content"`
}

// ReferenceFileView 参考文件元数据视图
type ReferenceFileView struct {
	Name         string    `json:"name"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// ListReferencesResponse 参考文件列表响应
type ListReferencesResponse struct {
	Success bool                `json:"success"`
	Files   []ReferenceFileView `json:"files"`
	Total   int                 `json:"total"`
}

// GetReferenceResponse 参考文件读取响应
type GetReferenceResponse struct {
	Success      bool      `json:"success"`
	Name         string    `json:"name"`
	Content      string    `json:"content"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// UpdateReferenceResponse 参考文件更新响应
type UpdateReferenceResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	Name         string    `json:"name"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// ToListReferencesResponse 将元数据列表转换为响应 DTO
func ToListReferencesResponse(infos []entity.ReferenceFileInfo) *ListReferencesResponse {
	files := make([]ReferenceFileView, 0, len(infos))
	for _, info := range infos {
		files = append(files, ReferenceFileView{
			Name:         info.Name,
			LastModified: info.LastModified,
			Size:         info.Size,
		})
	}
	return &ListReferencesResponse{
		Success: true,
		Files:   files,
		Total:   len(files),
	}
}

// ToGetReferenceResponse 将实体转换为响应 DTO
func ToGetReferenceResponse(f *entity.ReferenceFile) *GetReferenceResponse {
	return &GetReferenceResponse{
		Success:      true,
		Name:         f.Name,
		Content:      f.Content,
		LastModified: f.LastModified,
		Size:         f.Size,
	}
}

// ToUpdateReferenceResponse 将写后元数据转换为响应 DTO
func ToUpdateReferenceResponse(info *entity.ReferenceFileInfo) *UpdateReferenceResponse {
	return &UpdateReferenceResponse{
		Success:      true,
		Message:      "reference file updated",
		Name:         info.Name,
		LastModified: info.LastModified,
		Size:         info.Size,
	}
}
