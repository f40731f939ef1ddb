package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-writer-api/internal/config"
	"book-writer-api/pkg/errors"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.BackendConfig{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	})
}

func TestClientUnconfigured(t *testing.T) {
	client := NewClient(config.BackendConfig{})
	assert.False(t, client.Configured())

	_, err := client.Do(context.Background(), http.MethodGet, "/references", nil, nil)
	require.Error(t, err)

	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeBackendNotConfigured, appErr.Code)
	assert.Equal(t, 500, appErr.HTTPStatus)
	assert.Equal(t, "Backend URL not configured", appErr.Message)
}

func TestClientForwardsAuthorizationVerbatim(t *testing.T) {
	const token = "Bearer abc.def.ghi"

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := WithAuthorization(context.Background(), token)

	resp, err := client.Do(ctx, http.MethodGet, "/references", nil, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, token, gotAuth)
}

func TestClientOmitsAuthorizationWhenAbsent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Do(context.Background(), http.MethodGet, "/references", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	query := url.Values{}
	query.Set("project_id", "proj-1")

	_, err := client.Do(context.Background(), http.MethodGet, "/references", query, nil)
	require.NoError(t, err)
	assert.Equal(t, "proj-1", gotQuery.Get("project_id"))
}

func TestResponseRelayBody(t *testing.T) {
	t.Run("valid json passes through verbatim", func(t *testing.T) {
		body := []byte(`{"detail":"chapter not found","code":42}`)
		resp := &Response{Status: 404, Body: body}
		assert.Equal(t, body, resp.RelayBody())
	})

	t.Run("plain text wrapped as detail", func(t *testing.T) {
		resp := &Response{Status: 502, Body: []byte("Bad Gateway")}
		assert.JSONEq(t, `{"detail":"Bad Gateway"}`, string(resp.RelayBody()))
	})

	t.Run("empty body wrapped as empty detail", func(t *testing.T) {
		resp := &Response{Status: 500, Body: nil}
		assert.JSONEq(t, `{"detail":""}`, string(resp.RelayBody()))
	})
}

func TestResponseAsError(t *testing.T) {
	t.Run("detail field preferred", func(t *testing.T) {
		resp := &Response{Status: 404, Body: []byte(`{"detail":"chapter not found"}`)}
		appErr := resp.AsError()
		assert.Equal(t, errors.CodeUpstreamError, appErr.Code)
		assert.Equal(t, 404, appErr.HTTPStatus)
		assert.Equal(t, "chapter not found", appErr.Detail)
	})

	t.Run("error field fallback", func(t *testing.T) {
		resp := &Response{Status: 409, Body: []byte(`{"error":"conflict"}`)}
		appErr := resp.AsError()
		assert.Equal(t, 409, appErr.HTTPStatus)
		assert.Equal(t, "conflict", appErr.Detail)
	})

	t.Run("raw text fallback", func(t *testing.T) {
		resp := &Response{Status: 500, Body: []byte("boom")}
		appErr := resp.AsError()
		assert.Equal(t, 500, appErr.HTTPStatus)
		assert.Equal(t, "boom", appErr.Detail)
	})
}

func TestClientRelaysBackendStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"no such chapter"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Do(context.Background(), http.MethodGet, "/v2/chapters/project/p/chapter/3", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.False(t, resp.OK())
	assert.Equal(t, `{"detail":"no such chapter"}`, string(resp.Body))
}

func TestChapterPath(t *testing.T) {
	assert.Equal(t, "/v2/chapters/project/proj-1/chapter/3", ChapterPath("proj-1", 3))
	// 特殊字符转义后不破坏路径结构
	assert.Equal(t, "/v2/chapters/project/a%2Fb/chapter/1", ChapterPath("a/b", 1))
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient(config.BackendConfig{BaseURL: "http://backend.local/ "})
	assert.Equal(t, "http://backend.local", client.BaseURL())
}
