package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGitURL(t *testing.T) {
	localRepo := filepath.Join(t.TempDir(), "checkout.git")
	require.NoError(t, os.Mkdir(localRepo, 0755))

	tests := []struct {
		input string
		want  bool
	}{
		{"https://github.com/user/repo.git", true},
		{"git@github.com:user/repo.git", true},
		{"git@github.com:user/repo", true},
		{".", false},
		{"./src", false},
		{"https://github.com/user/repo", false},
		{localRepo, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isGitURL(tt.input), tt.input)
	}
}
