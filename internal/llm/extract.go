package llm

import (
	"fmt"
	"strings"
)

// ExtractJSON locates the first well-formed JSON payload embedded in an LLM
// response. Models often wrap the payload in prose or a fenced code block.
// A ```json fence is preferred; otherwise the first balanced brace-delimited
// span is returned.
func ExtractJSON(response string) (string, error) {
	if fenced, ok := extractFenced(response); ok {
		return fenced, nil
	}

	if span, ok := extractBalancedBraces(response); ok {
		return span, nil
	}

	return "", fmt.Errorf("no JSON payload found in response")
}

// extractFenced pulls the contents of the first ```json fenced block
func extractFenced(response string) (string, bool) {
	start := strings.Index(response, "```json")
	if start == -1 {
		return "", false
	}
	start += len("```json")

	end := strings.Index(response[start:], "```")
	if end == -1 {
		return "", false
	}

	content := strings.TrimSpace(response[start : start+end])
	if content == "" {
		return "", false
	}
	return content, true
}

// extractBalancedBraces returns the first balanced {...} span, respecting
// string literals and escapes so braces inside values don't truncate the span
func extractBalancedBraces(response string) (string, bool) {
	start := strings.IndexByte(response, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(response); i++ {
		ch := response[i]

		if escaped {
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return response[start : i+1], true
				}
			}
		}
	}

	return "", false
}
