package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountDiffLines(t *testing.T) {
	diff := "diff --git a/app.py b/app.py\n" +
		"--- a/app.py\n" +
		"+++ b/app.py\n" +
		"@@ -1,4 +1,5 @@\n" +
		"-old_line = 1\n" +
		"+new_line = 1\n" +
		"+another = 2\n" +
		" unchanged = 3\n"

	added, deleted := CountDiffLines(diff)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, deleted)
}

func TestCountDiffLines_EmptyDiff(t *testing.T) {
	added, deleted := CountDiffLines("")
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, deleted)
}

func TestCountDiffLines_HeadersExcluded(t *testing.T) {
	diff := "--- a/file.go\n+++ b/file.go\n"

	added, deleted := CountDiffLines(diff)
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, deleted)
}

func TestCountDiffLines_DeletedFile(t *testing.T) {
	diff := "diff --git a/gone.go b/gone.go\n" +
		"--- a/gone.go\n" +
		"+++ /dev/null\n" +
		"@@ -1,2 +0,0 @@\n" +
		"-package gone\n" +
		"-var x = 1\n"

	added, deleted := CountDiffLines(diff)
	assert.Equal(t, 0, added)
	assert.Equal(t, 2, deleted)
}
