package fsstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-writer-api/pkg/errors"
)

func TestPathResolverScoped(t *testing.T) {
	r := NewPathResolver("/data/projects", true)

	dir, err := r.Dir("proj-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/projects", "proj-1", "references"), dir)

	path, err := r.Resolve("proj-1", "notes.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/projects", "proj-1", "references", "notes.md"), path)
}

func TestPathResolverScopedRequiresProjectID(t *testing.T) {
	r := NewPathResolver("/data/projects", true)

	_, err := r.Dir("")
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingProjectID, errors.AsAppError(err).Code)

	_, err = r.Resolve("", "notes.md")
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingProjectID, errors.AsAppError(err).Code)
}

func TestPathResolverRejectsTraversal(t *testing.T) {
	r := NewPathResolver("/data/projects", true)

	_, err := r.Resolve("proj-1", "../../etc/passwd.md")
	require.Error(t, err)
	assert.Equal(t, 400, errors.AsAppError(err).HTTPStatus)

	_, err = r.Dir("../other")
	require.Error(t, err)
	assert.Equal(t, 400, errors.AsAppError(err).HTTPStatus)
}

func TestPathResolverLegacy(t *testing.T) {
	r := NewPathResolver("references", false)

	// legacy 模式无项目概念，project_id 被忽略
	dir, err := r.Dir("")
	require.NoError(t, err)
	assert.Equal(t, "references", dir)

	path, err := r.Resolve("ignored", "notes.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("references", "notes.md"), path)

	// 文件名校验在 legacy 模式下依然生效
	_, err = r.Resolve("", "../escape.md")
	require.Error(t, err)
}
