package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
Gateway:
  Listen: ":9000"
Storage:
  Region: ru-central1
  Bucket: file-bucket
  Table: metadatatable
  Timeout: 2s
`), 0o644))

	t.Setenv("CONFIG", path)
	t.Setenv("BUCKET", "env-bucket")

	c, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9000", c.Gateway.Listen)
	require.Equal(t, "env-bucket", c.Storage.Bucket)
	require.Equal(t, "metadatatable", c.Storage.Table)

	timeout, err := c.StoreTimeout()
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, timeout)
}

func TestLoadConfigRequiresBackends(t *testing.T) {
	t.Setenv("CONFIG", "")
	t.Setenv("REGION", "ru-central1")
	t.Setenv("BUCKET", "imagebucket")
	t.Setenv("TABLE", "")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "TABLE")
}

func TestStoreTimeoutDefault(t *testing.T) {
	var c Config
	timeout, err := c.StoreTimeout()
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, timeout)
}
