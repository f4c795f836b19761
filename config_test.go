package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero max files", Config{MaxFiles: 0, MaxTotalLines: 10}, true},
		{"negative max lines", Config{MaxFiles: 1, MaxTotalLines: -1}, true},
		{"valid pattern", Config{MaxFiles: 1, MaxTotalLines: 1, IgnorePatterns: []string{"**/*.pyc"}}, false},
		{"malformed pattern", Config{MaxFiles: 1, MaxTotalLines: 1, IgnorePatterns: []string{"[abc"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setConfigDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxFiles)
	assert.Equal(t, 5000, cfg.MaxTotalLines)
	assert.Contains(t, cfg.IgnoreDirs, "node_modules")
	assert.Empty(t, cfg.IgnorePatterns)
	assert.False(t, cfg.RespectGitignore)
}

func TestReadConfigFileLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
ignore_dirs = ["vendor", "dist"]
ignore_patterns = ["**/*_pb2.py", " "]
max_files = 10
gitignore = true
`), 0644))
	t.Setenv("CLIPSOURCE_MAX_TOTAL_LINES", "250")

	v := viper.New()
	setConfigDefaults(v)
	used, err := readConfigFile(v, path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, dirSet([]string{"vendor", "dist"}), cfg.IgnoreDirs)
	assert.Equal(t, []string{"**/*_pb2.py"}, cfg.IgnorePatterns)
	assert.Equal(t, 10, cfg.MaxFiles)
	assert.Equal(t, 250, cfg.MaxTotalLines)
	assert.True(t, cfg.RespectGitignore)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	v := viper.New()
	setConfigDefaults(v)
	v.Set("max_files", -3)

	_, err := loadConfig(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReadConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_files = = 3"), 0644))

	v := viper.New()
	_, err := readConfigFile(v, path)
	assert.Error(t, err)
}
