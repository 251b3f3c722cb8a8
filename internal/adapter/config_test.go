package adapter

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearCacheRemovesCacheDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("cache path is not derived from HOME on windows")
	}
	t.Setenv("HOME", t.TempDir())

	cachePath := GetCachePath()
	require.NoError(t, os.MkdirAll(cachePath, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cachePath, "session.db"), []byte("x"), 0644))

	require.NoError(t, ClearCache())
	_, err := os.Stat(cachePath)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-absent cache is fine
	assert.NoError(t, ClearCache())
}
