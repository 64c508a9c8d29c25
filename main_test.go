package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDiscoverFiles(t *testing.T) {
	root := filepath.Join("grader", "testdata")

	t.Run("filtered by language", func(t *testing.T) {
		files, err := discoverFiles(root, model.LangGo)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "go", "broken.go"),
			filepath.Join(root, "go", "no_embed.go"),
			filepath.Join(root, "go", "no_fly.go"),
			filepath.Join(root, "go", "not_invoked.go"),
			filepath.Join(root, "go", "valid.go"),
		}, files)
	})

	t.Run("all supported languages", func(t *testing.T) {
		files, err := discoverFiles(root, "")
		require.NoError(t, err)
		assert.Len(t, files, 20)
		assert.Contains(t, files, filepath.Join(root, "java", "Valid.java"))
		assert.NotContains(t, files, filepath.Join(root, "notes.txt"))
	})
}

func TestGradeSingle_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		path string
		want int
	}{
		{"passing submission", filepath.Join("grader", "testdata", "java", "Valid.java"), exitPassed},
		{"failing submission", filepath.Join("grader", "testdata", "java", "EnumAnimal.java"), exitFailed},
		{"missing file without extension", filepath.Join("grader", "testdata", "submission"), exitFailed},
		{"unsupported extension", filepath.Join("grader", "testdata", "notes.txt"), exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.want, gradeSingle(tt.path, "", &buf, zap.NewNop()))
		})
	}
}
