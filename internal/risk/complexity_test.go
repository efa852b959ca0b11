package risk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestComplexityCalculator_EmptyChange(t *testing.T) {
	calc := NewComplexityCalculator(t.TempDir())

	score := calc.Calculate(context.Background(), Input{})

	assert.Equal(t, 0.0, score)
}

func TestComplexityCalculator_CountsPythonTokens(t *testing.T) {
	dir := t.TempDir()
	// 2x "def ", 1x "if ", 1x "for " = 4 tokens
	writeTestFile(t, dir, "app.py", "def handler(req):\n    if req.ok:\n        for item in req.items:\n            pass\n\ndef helper():\n    pass\n")

	calc := NewComplexityCalculator(dir)
	score := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{
		Files: []string{"app.py"},
	}})

	assert.InDelta(t, 0.04, score, 1e-9)
}

func TestComplexityCalculator_SkipsNonSourceAndMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "notes.md", "if if if for for\n")

	calc := NewComplexityCalculator(dir)
	score := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{
		Files: []string{"notes.md", "deleted.py"},
	}})

	// Markdown has no vocabulary; the deleted file is skipped, not fatal
	assert.Equal(t, 0.0, score)
}

func TestComplexityCalculator_CapsAtOne(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "big.py", strings.Repeat("if x:\n", 200))

	calc := NewComplexityCalculator(dir)
	score := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{
		Files: []string{"big.py"},
	}})

	assert.Equal(t, 1.0, score)
}

func TestComplexityCalculator_Default(t *testing.T) {
	assert.Equal(t, 0.5, NewComplexityCalculator(".").Default())
}
