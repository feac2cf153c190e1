package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDir(t *testing.T) {
	t.Run("finds directory in an ancestor", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, DefaultDir), 0o755))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		dir, err := FindDir(nested)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, DefaultDir), dir)
	})

	t.Run("repository migrations are reachable", func(t *testing.T) {
		dir, err := FindDir(".")
		require.NoError(t, err)

		up, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
		require.NoError(t, err)
		down, err := filepath.Glob(filepath.Join(dir, "*.down.sql"))
		require.NoError(t, err)
		assert.NotEmpty(t, up)
		assert.Len(t, down, len(up))
	})

	t.Run("ignores plain files", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, DefaultDir), []byte("x"), 0o644))

		dir, err := FindDir(root)
		if err == nil {
			assert.NotEqual(t, filepath.Join(root, DefaultDir), dir)
		}
	})
}
