// Package domain 定义领域模型和接口
package domain

import "errors"

var (
	// ErrFolderNotFound 文件夹不存在
	ErrFolderNotFound = errors.New("folder not found")
	// ErrFileNotFound 文件不存在
	ErrFileNotFound = errors.New("file not found")
)

// NoteMetadata 笔记结构化元数据
type NoteMetadata struct {
	// Frontmatter nil 表示笔记没有 frontmatter 块
	Frontmatter map[string]any
}

// MetadataLookup 笔记元数据查询
type MetadataLookup interface {
	// Metadata returns false when the vault has no record for the file.
	Metadata(file NoteFile) (*NoteMetadata, bool)
}

// LinkResolver 本地链接解析
type LinkResolver interface {
	// ResolveLink resolves a link target relative to sourcePath, like Obsidian's
	// "first linkpath destination".
	ResolveLink(linkTarget, sourcePath string) (NoteFile, bool)
}

// BinaryReader 读取附件二进制内容
type BinaryReader interface {
	ReadBinary(file NoteFile) ([]byte, error)
}

// DisplayNamer 笔记显示名（标题）
type DisplayNamer interface {
	DisplayName(file NoteFile) string
}

// Vault 仓库访问的全部能力
type Vault interface {
	MetadataLookup
	LinkResolver
	BinaryReader
	DisplayNamer

	// File looks a vault-relative path up without link resolution.
	File(path string) (NoteFile, bool)
	// ReadText 读取笔记文本
	ReadText(file NoteFile) (string, error)
	// ListFiles 列出目录下（递归）扩展名匹配的文件，folder 为空或 "/" 表示整个仓库
	ListFiles(folder string, exts []string) ([]NoteFile, error)
	// Root 仓库根目录
	Root() string
}
