// Package format bounds fetched content to display-safe text. Every
// function coerces its input instead of failing; callers never see an error
// from this package.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// MaxEmbedBody is the longest description Discord accepts on an embed.
	MaxEmbedBody = 4096
	// MaxBodyLines caps how many lines of an issue or PR body are shown.
	MaxBodyLines = 15
)

// Description bounds an issue or PR body for embedding: at most
// MaxBodyLines lines, then at most MaxEmbedBody characters. The line cap is
// applied before the length cap.
func Description(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) > MaxBodyLines {
		lines = lines[:MaxBodyLines]
	}
	return Truncate(strings.Join(lines, "\n"), MaxEmbedBody)
}

// Truncate bounds s to at most max runes without splitting a rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// TrimIndent strips the shared leading indentation from a slice of lines
// and joins them with newlines. The shared indent is the minimum leading
// whitespace count among non-empty lines, so a blank line never lowers it.
// Trimming already-trimmed lines is a no-op.
func TrimIndent(lines []string) string {
	prefix := strings.Repeat(" ", baseIndent(lines))

	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(trimmed, "\n")
}

func baseIndent(lines []string) int {
	base := -1
	for _, line := range lines {
		if line == "" {
			continue
		}
		if n := indent(line); base < 0 || n < base {
			base = n
		}
	}
	if base < 0 {
		return 0
	}
	return base
}

func indent(line string) int {
	for i, c := range line {
		if !unicode.IsSpace(c) {
			return i
		}
	}
	return 0
}

// Extension returns the file extension of path without the leading dot,
// used as the syntax hint on fenced code blocks. Empty if there is none.
func Extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// CodeBlock renders content as a fenced code block with a language hint,
// bounding the whole block to MaxEmbedBody.
func CodeBlock(lang, content string) string {
	// Reserve room for the fences and the hint.
	content = Truncate(content, MaxEmbedBody-8-len(lang))
	return fmt.Sprintf("```%s\n%s\n```", lang, content)
}
