package util

import "regexp"

var (
	// %% ... %%, spanning lines, shortest match
	commentRegex = regexp.MustCompile(`(?s)%%.*?%%`)
	// [[target|alias]] -> group 1 is the alias
	linkAliasRegex = regexp.MustCompile(`\[\[[^\[\]|\n]*\|([^\[\]\n]*?)\]\]`)
	// [[target]] / ![[target]] -> group 1 is the target
	wikiLinkTextRegex = regexp.MustCompile(`!?\[\[([^\[\]\n]*?)\]\]`)
)

// RemoveComments removes every %%comment%% span.
// RemoveComments 移除所有 %% 注释 %%
func RemoveComments(content string) string {
	return commentRegex.ReplaceAllString(content, "")
}

// ReplaceLinkAliases replaces [[target|alias]] with alias.
// ReplaceLinkAliases 将 [[目标|别名]] 替换为别名
func ReplaceLinkAliases(content string) string {
	return linkAliasRegex.ReplaceAllString(content, "${1}")
}

// RemoveWikiLinks replaces [[target]] and ![[target]] with target.
// RemoveWikiLinks 将 [[目标]] 与 ![[目标]] 替换为目标文本
func RemoveWikiLinks(content string) string {
	return wikiLinkTextRegex.ReplaceAllString(content, "${1}")
}

// SanitizeMarkdown turns note markup into plain text for Discord.
// Aliases are resolved before bare links are unwrapped.
// SanitizeMarkdown 将笔记标记转换为可发送到 Discord 的文本
func SanitizeMarkdown(content string) string {
	content = StripFrontmatter(content)
	content = RemoveComments(content)
	content = ReplaceLinkAliases(content)
	content = RemoveWikiLinks(content)
	return content
}
