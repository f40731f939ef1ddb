// Package backend 提供内容生成后端的代理客户端
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"book-writer-api/internal/config"
	"book-writer-api/pkg/errors"
	"book-writer-api/pkg/metrics"
)

var tracer = otel.Tracer("backend")

// authContextKey Authorization 头的 context 键类型
type authContextKey struct{}

// WithAuthorization 将入站 Authorization 头注入 context
// 头部内容对本层完全不透明，按字节原样转发
func WithAuthorization(ctx context.Context, header string) context.Context {
	if header == "" {
		return ctx
	}
	return context.WithValue(ctx, authContextKey{}, header)
}

// AuthorizationFromContext 从 context 取出待转发的 Authorization 头
func AuthorizationFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(authContextKey{}).(string); ok {
		return v
	}
	return ""
}

// Response 后端响应
type Response struct {
	Status      int
	Body        []byte
	ContentType string
}

// OK 检查响应是否为 2xx
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// DecodeJSON 将响应体解码到目标结构
func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// RelayBody 返回透传给调用方的错误体
// 后端返回合法 JSON 时原样透传，否则包装为 {detail: 原始文本}
func (r *Response) RelayBody() []byte {
	if json.Valid(r.Body) && len(r.Body) > 0 {
		return r.Body
	}
	wrapped, _ := json.Marshal(map[string]string{"detail": string(r.Body)})
	return wrapped
}

// AsError 将非 2xx 响应转换为携带原始状态码的应用错误
func (r *Response) AsError() *errors.AppError {
	detail := string(r.Body)
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &parsed); err == nil {
		if parsed.Detail != "" {
			detail = parsed.Detail
		} else if parsed.Error != "" {
			detail = parsed.Error
		}
	}
	return errors.NewUpstream(r.Status, detail)
}

// Client 后端代理客户端
// 所有调用转发入站 Authorization 头，状态码与响应体原样中继，
// 不做重试，单次失败立即上抛
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient 创建后端客户端
// 超时默认为 0（继承 http.Client 默认行为），可经配置覆盖
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpc:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured 检查后端地址是否已配置
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// BaseURL 返回后端基础地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do 向后端发送一次代理请求并读取完整响应
// 后端地址未配置时返回配置错误，与调用方输入错误严格区分
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*Response, error) {
	if !c.Configured() {
		return nil, errors.ErrBackendNotConfigured
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	ctx, span := tracer.Start(ctx, "backend.Do",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("backend.path", path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to build backend request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth := AuthorizationFromContext(ctx); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	endpoint := endpointLabel(path)
	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint, method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, method, "error").Inc()
		span.RecordError(err)
		return nil, errors.Wrap(err, errors.CodeUpstreamError, "backend request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, method, "error").Inc()
		span.RecordError(err)
		return nil, errors.Wrap(err, errors.CodeUpstreamError, "failed to read backend response")
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(resp.StatusCode)).Inc()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	return &Response{
		Status:      resp.StatusCode,
		Body:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// endpointLabel 归一化指标中的端点标签，避免标签基数膨胀
func endpointLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/references"):
		return "references"
	case strings.HasPrefix(path, "/v2/chapters"):
		return "chapters"
	default:
		return "other"
	}
}

// ChapterPath 构建章节代理路径
func ChapterPath(projectID string, chapter int) string {
	return fmt.Sprintf("/v2/chapters/project/%s/chapter/%d", url.PathEscape(projectID), chapter)
}
