package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })

	prev := configDefault
	configDefault = "lang: en\n"
	t.Cleanup(func() { configDefault = prev })

	t.Run("explicit", func(t *testing.T) {
		dir := t.TempDir()
		p, err := resolveConfig(&rootFlags{dir: dir, config: "mine.yaml"})
		require.NoError(t, err)
		assert.Equal(t, "mine.yaml", p)
	})

	t.Run("creates default", func(t *testing.T) {
		dir := t.TempDir()
		p, err := resolveConfig(&rootFlags{dir: dir})
		require.NoError(t, err)
		assert.Equal(t, defaultConfigPath, p)

		data, err := os.ReadFile(filepath.Join(dir, "config", "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "lang: en\n", string(data))
	})

	t.Run("prefers root config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("lang: zh_cn\n"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte("lang: en\n"), 0644))

		p, err := resolveConfig(&rootFlags{dir: dir})
		require.NoError(t, err)
		assert.Equal(t, "config.yaml", p)
	})

	t.Run("bad dir", func(t *testing.T) {
		_, err := resolveConfig(&rootFlags{dir: filepath.Join(t.TempDir(), "missing")})
		assert.Error(t, err)
	})
}

func TestNotePathOnDisk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Daily.md"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "plain"), nil, 0644))

	assert.Equal(t, filepath.Join(root, "Daily.md"), notePathOnDisk(root, "Daily"))
	assert.Equal(t, filepath.Join(root, "Daily.md"), notePathOnDisk(root, "Daily.md"))
	assert.Equal(t, filepath.Join(root, "plain"), notePathOnDisk(root, "plain"))
	assert.Equal(t, filepath.Join(root, "sub", "x.md"), notePathOnDisk(root, "sub/x"))
}
