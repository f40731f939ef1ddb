package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-writer-api/pkg/errors"
)

func TestIsMarkdownName(t *testing.T) {
	assert.True(t, IsMarkdownName("notes.md"))
	assert.True(t, IsMarkdownName("a.md"))
	assert.False(t, IsMarkdownName(".md"))
	assert.False(t, IsMarkdownName("notes.txt"))
	assert.False(t, IsMarkdownName(""))
}

func TestValidateFilename(t *testing.T) {
	valid := []string{
		"notes.md",
		"chapter-01.md",
		"world_building.v2.md",
		"A.md",
	}
	for _, name := range valid {
		assert.NoError(t, ValidateFilename(name), name)
	}

	t.Run("missing markdown suffix", func(t *testing.T) {
		err := ValidateFilename("notes.txt")
		require.Error(t, err)
		appErr := errors.AsAppError(err)
		assert.Equal(t, errors.CodeInvalidFilename, appErr.Code)
		assert.Equal(t, 400, appErr.HTTPStatus)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		invalid := []string{
			"../../etc/passwd.md",
			"..%2Fpasswd.md",
			"a/b.md",
			"a\\b.md",
			"..md",
			".hidden.md",
			"-leading.md",
		}
		for _, name := range invalid {
			err := ValidateFilename(name)
			require.Error(t, err, name)
			assert.Equal(t, errors.CodeInvalidFilename, errors.AsAppError(err).Code, name)
		}
	})
}

func TestValidateProjectID(t *testing.T) {
	assert.NoError(t, ValidateProjectID("proj-1"))
	assert.NoError(t, ValidateProjectID("9b2f0c"))

	t.Run("empty is missing", func(t *testing.T) {
		for _, id := range []string{"", "   "} {
			err := ValidateProjectID(id)
			require.Error(t, err)
			assert.Equal(t, errors.CodeMissingProjectID, errors.AsAppError(err).Code)
		}
	})

	t.Run("path components rejected", func(t *testing.T) {
		for _, id := range []string{"../other", "a/b", "a..b/c", ".."} {
			err := ValidateProjectID(id)
			require.Error(t, err, id)
			assert.Equal(t, 400, errors.AsAppError(err).HTTPStatus, id)
		}
	})
}
