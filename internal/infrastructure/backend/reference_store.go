// Package backend 提供内容生成后端的代理客户端
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"book-writer-api/internal/domain/entity"
	"book-writer-api/pkg/errors"
)

// ReferenceStore 远端参考文件存储
// 以 ReferenceStore 契约包装后端的 references 接口：
// Authorization 原样转发，后端状态码与错误语义原样中继
type ReferenceStore struct {
	client *Client
}

// NewReferenceStore 创建远端参考文件存储
func NewReferenceStore(client *Client) *ReferenceStore {
	return &ReferenceStore{client: client}
}

// Name 返回存储实现标识
func (s *ReferenceStore) Name() string {
	return "remote"
}

// referenceFileDTO 后端参考文件载荷
type referenceFileDTO struct {
	Name         string    `json:"name"`
	Content      string    `json:"content,omitempty"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// List 代理后端的参考文件列表接口
func (s *ReferenceStore) List(ctx context.Context, projectID string) ([]entity.ReferenceFileInfo, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("project_id", projectID)
	}

	resp, err := s.client.Do(ctx, http.MethodGet, "/references", query, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.AsError()
	}

	var payload struct {
		Files []referenceFileDTO `json:"files"`
		Total int                `json:"total"`
	}
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamError, "failed to decode backend reference list")
	}

	infos := make([]entity.ReferenceFileInfo, 0, len(payload.Files))
	for _, f := range payload.Files {
		infos = append(infos, entity.ReferenceFileInfo{
			Name:         f.Name,
			LastModified: f.LastModified,
			Size:         f.Size,
		})
	}
	return infos, nil
}

// Get 代理后端的参考文件读取接口
func (s *ReferenceStore) Get(ctx context.Context, projectID, filename string) (*entity.ReferenceFile, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("project_id", projectID)
	}

	resp, err := s.client.Do(ctx, http.MethodGet, "/references/"+url.PathEscape(filename), query, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.AsError()
	}

	var payload referenceFileDTO
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamError, "failed to decode backend reference file")
	}

	return &entity.ReferenceFile{
		Name:         payload.Name,
		Content:      payload.Content,
		LastModified: payload.LastModified,
		Size:         payload.Size,
	}, nil
}

// Update 代理后端的参考文件更新接口
func (s *ReferenceStore) Update(ctx context.Context, projectID, filename, content string) (*entity.ReferenceFileInfo, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("project_id", projectID)
	}

	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to encode update payload")
	}

	resp, err := s.client.Do(ctx, http.MethodPut, "/references/"+url.PathEscape(filename), query, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.AsError()
	}

	var payload referenceFileDTO
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstreamError, "failed to decode backend update response")
	}

	info := entity.ReferenceFileInfo{
		Name:         payload.Name,
		LastModified: payload.LastModified,
		Size:         payload.Size,
	}
	if info.Name == "" {
		info.Name = filename
	}
	return &info, nil
}
