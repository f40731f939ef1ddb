package handler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-writer-api/internal/config"
	"book-writer-api/internal/infrastructure/backend"
	"book-writer-api/internal/interfaces/http/middleware"
)

func newChapterTestRouter(client *backend.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.AuthPassthrough())

	h := NewChapterHandler(client)
	engine.GET("/chapters/:chapter", h.GetChapter)
	engine.DELETE("/chapters/:chapter", h.DeleteChapter)
	return engine
}

func newBackendClient(baseURL string) *backend.Client {
	return backend.NewClient(config.BackendConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func TestChapterInvalidNumberRejectedBeforeProxy(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	engine := newChapterTestRouter(newBackendClient(srv.URL))

	for _, chapter := range []string{"0", "-1", "abc", "1.5"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/chapters/"+chapter+"?project_id=proj-1", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, chapter)
		assert.Contains(t, w.Body.String(), "positive integer", chapter)
	}

	// 校验失败不得触发任何出站请求
	assert.Equal(t, int64(0), calls.Load())
}

func TestChapterMissingProjectIDRejectedBeforeProxy(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	engine := newChapterTestRouter(newBackendClient(srv.URL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chapters/3", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "project_id")
	assert.Equal(t, int64(0), calls.Load())
}

func TestChapterProxyRelaysSuccess(t *testing.T) {
	const token = "Bearer xyz"

	var gotPath, gotAuth, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		w.Write([]byte(`{"chapter":3,"content":"正文"}`))
	}))
	defer srv.Close()

	engine := newChapterTestRouter(newBackendClient(srv.URL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chapters/3?project_id=proj-1", nil)
	req.Header.Set("Authorization", token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/v2/chapters/project/proj-1/chapter/3", gotPath)
	assert.Equal(t, token, gotAuth)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.JSONEq(t, `{"chapter":3,"content":"正文"}`, w.Body.String())
}

func TestChapterProxyRelaysDeleteVerb(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	engine := newChapterTestRouter(newBackendClient(srv.URL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/chapters/7?project_id=proj-1", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestChapterProxyRelaysBackendErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"chapter 99 not found"}`))
	}))
	defer srv.Close()

	engine := newChapterTestRouter(newBackendClient(srv.URL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chapters/99?project_id=proj-1", nil)
	engine.ServeHTTP(w, req)

	// 后端状态码与响应体原样中继
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"chapter 99 not found"}`, w.Body.String())
}

func TestChapterProxyWrapsNonJSONBackendBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	engine := newChapterTestRouter(newBackendClient(srv.URL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chapters/1?project_id=proj-1", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"detail":"upstream exploded"}`, w.Body.String())
}

func TestChapterProxyBackendNotConfigured(t *testing.T) {
	engine := newChapterTestRouter(backend.NewClient(config.BackendConfig{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/chapters/3?project_id=proj-1", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Backend URL not configured")
}
