package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLanguages(t *testing.T) {
	v := viper.New()
	setConfigDefaults(v)

	langs, err := loadLanguages(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguages().Labels(), langs.Labels())

	v.Set("language", []string{"python"})
	langs, err = loadLanguages(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, langs.Labels())
}

func TestLoadLanguagesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yml")
	require.NoError(t, os.WriteFile(path, []byte("- label: toml\n  extensions: [\".toml\"]\n"), 0644))

	v := viper.New()
	setConfigDefaults(v)
	v.Set("languages_file", path)

	langs, err := loadLanguages(v)
	require.NoError(t, err)
	label, ok := langs.Classify("Cargo.toml")
	assert.True(t, ok)
	assert.Equal(t, "toml", label)

	v.Set("language", []string{"python"})
	_, err = loadLanguages(v)
	assert.Error(t, err)
}
