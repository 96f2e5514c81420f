// Package util 提供通用工具函数
package util

import "strings"

// GeneratePathVariations generates all suffix variations of a path for link matching.
// Given "projects/assets/pic.png", returns:
// ["pic.png", "assets/pic.png", "projects/assets/pic.png"]
// Markdown notes lose their ".md" so [[note]] matches "folder/note.md".
func GeneratePathVariations(path string) []string {
	path = strings.TrimSuffix(path, ".md")

	if path == "" {
		return nil
	}

	parts := strings.Split(path, "/")

	// Build progressively longer suffixes from right to left
	variations := make([]string, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		suffix := strings.Join(parts[i:], "/")
		variations = append(variations, suffix)
	}

	return variations
}
