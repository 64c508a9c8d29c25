package processor_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/CodMac/go-treesitter-hybrid-grader/model"
	"github.com/CodMac/go-treesitter-hybrid-grader/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	_ "github.com/CodMac/go-treesitter-hybrid-grader/x/golang" // 确保注册 Go
	_ "github.com/CodMac/go-treesitter-hybrid-grader/x/java"   // 确保注册 Java
)

func graderTestdata(parts ...string) string {
	return filepath.Join(append([]string{"..", "grader", "testdata"}, parts...)...)
}

func TestFileProcessor_ProcessFiles(t *testing.T) {
	filePaths := []string{
		graderTestdata("java", "Valid.java"),
		graderTestdata("java", "NotInvoked.java"),
		graderTestdata("java", "Broken.java"),
		graderTestdata("java", "Nope.java"),
		graderTestdata("go", "valid.go"),
		graderTestdata("go", "no_fly.go"),
	}

	proc := processor.NewFileProcessor("", 3, zaptest.NewLogger(t))
	results, err := proc.ProcessFiles(context.Background(), filePaths)
	require.NoError(t, err)
	require.Len(t, results, len(filePaths))

	// 结果顺序与输入一致
	for i, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, filePaths[i], res.FilePath)
	}

	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Empty(t, results[1].Err)

	assert.False(t, results[2].Passed)
	assert.Contains(t, results[2].Err, "failed to parse")

	assert.False(t, results[3].Passed)
	assert.Contains(t, results[3].Err, "file not found")

	assert.True(t, results[4].Passed)
	assert.Equal(t, model.LangGo, results[4].Language)
	assert.False(t, results[5].Passed)
}

func TestFileProcessor_Empty(t *testing.T) {
	results, err := processor.NewFileProcessor(model.LangJava, 0, nil).ProcessFiles(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestFileProcessor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := processor.NewFileProcessor(model.LangJava, 2, nil).ProcessFiles(ctx, []string{graderTestdata("java", "Valid.java")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileProcessor_UnsupportedExtension(t *testing.T) {
	results, err := processor.NewFileProcessor("", 1, nil).ProcessFiles(context.Background(), []string{"notes.txt"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Err, "cannot detect language")
}
