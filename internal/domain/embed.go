// Package domain 定义领域模型和接口
package domain

import (
	"fmt"
	"strings"

	"github.com/haierkeys/note-discord-share/pkg/util"
)

// EmbedAuthor embed 作者
type EmbedAuthor struct {
	Name    string `json:"name" yaml:"name"`
	IconURL string `json:"iconURL" yaml:"iconURL"`
	URL     string `json:"url" yaml:"url"`
}

// IsComplete 所有子字段均非空
func (a EmbedAuthor) IsComplete() bool {
	return a.Name != "" && a.IconURL != "" && a.URL != ""
}

// EmbedField embed 字段
type EmbedField struct {
	Name   string `json:"name" yaml:"name"`
	Value  string `json:"value" yaml:"value"`
	Inline bool   `json:"inline" yaml:"inline"`
}

// EmbedFooter embed 页脚
type EmbedFooter struct {
	Text    string `json:"text" yaml:"text"`
	IconURL string `json:"iconURL" yaml:"iconURL"`
}

// IsComplete 所有子字段均非空
func (f EmbedFooter) IsComplete() bool {
	return f.Text != "" && f.IconURL != ""
}

// ImageKind 图片引用类型
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageRemote
	ImageLocal
)

// ImageRef is either a remote http(s) URL or a vault-local link target.
// ImageRef 远程 URL 或仓库内链接目标，在输入边界一次性判定
type ImageRef struct {
	Kind   ImageKind
	Target string
}

// RemoteImage 创建远程图片引用
func RemoteImage(u string) ImageRef {
	return ImageRef{Kind: ImageRemote, Target: u}
}

// LocalImage 创建本地链接图片引用
func LocalImage(linkTarget string) ImageRef {
	if linkTarget == "" {
		return ImageRef{}
	}
	return ImageRef{Kind: ImageLocal, Target: linkTarget}
}

// IsZero 是否为空引用
func (r ImageRef) IsZero() bool {
	return r.Kind == ImageNone || r.Target == ""
}

// String returns the raw form, wiki-link shaped for local references.
func (r ImageRef) String() string {
	switch r.Kind {
	case ImageRemote:
		return r.Target
	case ImageLocal:
		return "[[" + r.Target + "]]"
	}
	return ""
}

// ParseImageRef decides once whether a raw value is a remote URL or a local link.
//
// Accepted shapes:
//
//	"https://host/pic.png"      -> Remote
//	"[[pic.png]]", "![[pic.png|300]]" -> Local("pic.png")
//	[["pic.png"]]               -> Local("pic.png") (YAML reads an unquoted [[x]] as a nested list)
//	"folder/pic.png"            -> Local("folder/pic.png")
//
// Anything else (numbers, maps, empty lists) yields the zero ImageRef.
func ParseImageRef(v any) ImageRef {
	switch t := v.(type) {
	case nil:
		return ImageRef{}
	case ImageRef:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return ImageRef{}
		}
		if util.IsValidURL(s) {
			return RemoteImage(s)
		}
		if target, isLink := util.FirstLinkTarget(s); isLink {
			return LocalImage(target)
		}
		return LocalImage(util.LinkTarget(s))
	case []any:
		if len(t) == 0 {
			return ImageRef{}
		}
		return ParseImageRef(t[0])
	case []string:
		if len(t) == 0 {
			return ImageRef{}
		}
		return ParseImageRef(t[0])
	}
	return ImageRef{}
}

// Color embed 颜色，保留原始文本或数值
type Color struct {
	text     string
	number   int
	isNumber bool
}

// ColorFromString 从文本创建颜色（十六进制或颜色名）
func ColorFromString(s string) Color {
	return Color{text: strings.TrimSpace(s)}
}

// ColorFromInt 从整数创建颜色
func ColorFromInt(n int) Color {
	return Color{number: n, isNumber: true}
}

// ParseColor converts a frontmatter value into a Color.
func ParseColor(v any) Color {
	switch t := v.(type) {
	case nil:
		return Color{}
	case Color:
		return t
	case string:
		return ColorFromString(t)
	case int:
		return ColorFromInt(t)
	case int64:
		return ColorFromInt(int(t))
	case uint64:
		return ColorFromInt(int(t))
	case float64:
		return ColorFromInt(int(t))
	}
	return ColorFromString(fmt.Sprint(v))
}

// IsZero 是否未设置
func (c Color) IsZero() bool {
	return !c.isNumber && c.text == ""
}

// Number returns the numeric value when the color was given as a number.
func (c Color) Number() (int, bool) {
	return c.number, c.isNumber
}

func (c Color) String() string {
	if c.isNumber {
		return fmt.Sprintf("%d", c.number)
	}
	return c.text
}

// NoteFile 仓库内文件句柄
type NoteFile struct {
	// Path 仓库相对路径，使用 "/" 分隔
	Path string
	// Name 带扩展名的文件名
	Name string
}

// EmbedParameters is one logical embed before it is turned into a wire payload.
// EmbedParameters 一个待发送 embed 的规范表示
type EmbedParameters struct {
	Color       Color
	Title       string
	URL         string
	Author      *EmbedAuthor
	Description string
	Thumbnail   ImageRef
	// Fields nil 表示未设置，空切片表示"无字段"
	Fields []EmbedField
	Image  ImageRef
	Footer *EmbedFooter
	// SourceFile 仅用于解析本地链接，不序列化
	SourceFile *NoteFile
}

// SourcePath 返回来源笔记路径，用作本地链接解析基准
func (p *EmbedParameters) SourcePath() string {
	if p == nil || p.SourceFile == nil {
		return ""
	}
	return p.SourceFile.Path
}

