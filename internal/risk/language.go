package risk

import (
	"path/filepath"
	"strings"
)

// complexityVocabulary maps a source file extension to the control-structure
// tokens counted as complexity indicators for that language. Token counts are
// a crude proxy, not a semantic measure; they only bias the decision.
var complexityVocabulary = map[string][]string{
	".py": {"if ", "for ", "while ", "try:", "except:", "class ", "def "},
	".js": {"if (", "for (", "while (", "function ", "class ", "=>", "try {"},
	".ts": {"if (", "for (", "while (", "function ", "class ", "=>", "try {"},
	".go": {"if ", "for ", "switch ", "select ", "func ", "defer "},
}

// isSourceFile reports whether the path has a known source extension
func isSourceFile(path string) bool {
	_, ok := complexityVocabulary[filepath.Ext(path)]
	return ok
}

// isTestFile reports whether the path looks like a test or spec file
func isTestFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, "test") || strings.Contains(lower, "spec")
}
