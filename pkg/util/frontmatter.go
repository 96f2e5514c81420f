// Package util provides common utility functions
package util

import "regexp"

const frontmatterDelimiter = "---"

// frontmatterRegex matches a "---" line at offset 0, the shortest body, the next
// line that is exactly "---", and any whitespace after it.
var frontmatterRegex = regexp.MustCompile(`\A` + frontmatterDelimiter + `\r?\n(?s:.*?\r?\n)??` + frontmatterDelimiter + `(?:\r?\n|\z)\s*`)

// StripFrontmatter removes a leading frontmatter block.
// A "---" block anywhere other than the very start is left untouched.
// StripFrontmatter 移除文档开头的 frontmatter 块
func StripFrontmatter(content string) string {
	loc := frontmatterRegex.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[loc[1]:]
}
