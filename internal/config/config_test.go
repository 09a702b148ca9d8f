package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  name: urlshortner-backend
  mode: development
server:
  port: 9090
  read_timeout: 10
  write_timeout: 10
database:
  host: db.local
  port: 3306
  user: shortener
  password: pw
  name: shortener
cache:
  host: ""
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad 从 YAML 加载配置
func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "urlshortner-backend", cfg.App.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "", cfg.Cache.Host)
}

// TestLoadPortOverride PORT 环境变量优先于配置文件
func TestLoadPortOverride(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

// TestLoadDefaultPort 未配置端口时回退到 8080
func TestLoadDefaultPort(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: x\n"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

// TestLoadMissingFile 配置文件缺失时报错
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
