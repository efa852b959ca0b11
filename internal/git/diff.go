package git

import (
	"strings"
)

// CountDiffLines counts the added and deleted lines in a unified diff,
// ignoring the +++/--- header lines. Returns (linesAdded, linesDeleted).
func CountDiffLines(diff string) (int, int) {
	if diff == "" {
		return 0, 0
	}

	lines := strings.Split(diff, "\n")
	linesAdded := 0
	linesDeleted := 0

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case '+':
			if !strings.HasPrefix(line, "+++") {
				linesAdded++
			}
		case '-':
			if !strings.HasPrefix(line, "---") {
				linesDeleted++
			}
		}
	}

	return linesAdded, linesDeleted
}
