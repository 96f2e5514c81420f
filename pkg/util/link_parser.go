// Package util provides common utility functions
// Package util 提供通用工具函数
package util

import (
	"regexp"
	"strings"
)

// firstLinkRegex matches the first [[target]] or ![[target|alias]] token.
var firstLinkRegex = regexp.MustCompile(`!?\[\[([^\[\]]*)\]\]`)

// FirstLinkTarget returns the file part of the first wiki-link token in s.
// isLink is false when s holds no "[[" at all; a token that is empty or never
// closed yields isLink true with an empty target.
// FirstLinkTarget 提取第一个 wiki 链接的文件部分
func FirstLinkTarget(s string) (target string, isLink bool) {
	if !strings.Contains(s, "[[") {
		return "", false
	}
	m := firstLinkRegex.FindStringSubmatch(s)
	if m == nil {
		return "", true
	}
	return LinkTarget(m[1]), true
}

// LinkTarget strips the heading / block subpath and alias from a link path,
// leaving only the file part: "folder/pic.png#x|300" -> "folder/pic.png".
// LinkTarget 去掉链接中的 #子路径 与 |别名，仅保留文件部分
func LinkTarget(link string) string {
	if i := strings.Index(link, "|"); i >= 0 {
		link = link[:i]
	}
	if i := strings.Index(link, "#"); i >= 0 {
		link = link[:i]
	}
	return strings.TrimSpace(link)
}
