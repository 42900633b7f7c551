package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")

	CreateFile(t, path, "content")

	assert.FileExists(t, path)
	assert.Equal(t, "content", ReadFile(t, path))
}
