// Package dao 实现数据访问层
package dao

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/gookit/goutil/fsutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/logger"
	"github.com/haierkeys/note-discord-share/pkg/util"
)

const markdownExt = ".md"

// only "---" YAML blocks count as note properties
var yamlFrontmatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// vaultRepository 基于本地文件系统的仓库实现 domain.Vault 接口
type vaultRepository struct {
	root   string
	logger *zap.Logger
}

// NewVaultRepository 创建 Vault 实例，root 必须是已存在的目录
func NewVaultRepository(root string, lg *zap.Logger) (domain.Vault, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve vault path")
	}
	if !fsutil.IsDir(abs) {
		return nil, errors.Wrapf(domain.ErrFolderNotFound, "vault %s", abs)
	}
	return &vaultRepository{root: abs, logger: lg}, nil
}

func (r *vaultRepository) Root() string {
	return r.root
}

func (r *vaultRepository) abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

func newNoteFile(rel string) domain.NoteFile {
	return domain.NoteFile{Path: rel, Name: path.Base(rel)}
}

// File 按仓库相对路径查找文件
func (r *vaultRepository) File(p string) (domain.NoteFile, bool) {
	rel, ok := cleanVaultPath(p)
	if !ok || !fsutil.IsFile(r.abs(rel)) {
		return domain.NoteFile{}, false
	}
	return newNoteFile(rel), true
}

// DisplayName 笔记显示名：去掉扩展名的文件名
func (r *vaultRepository) DisplayName(file domain.NoteFile) string {
	name := file.Name
	if name == "" {
		name = path.Base(file.Path)
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

func (r *vaultRepository) ReadText(file domain.NoteFile) (string, error) {
	data, err := r.ReadBinary(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *vaultRepository) ReadBinary(file domain.NoteFile) ([]byte, error) {
	data, err := os.ReadFile(r.abs(file.Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(domain.ErrFileNotFound, file.Path)
		}
		return nil, errors.Wrapf(err, "read %s", file.Path)
	}
	return data, nil
}

// Metadata returns the note's frontmatter.
// There is no record for non-markdown or unreadable files; a note that does not
// start with a "---" block, or whose block is not valid YAML, has a record with
// nil Frontmatter.
// Metadata 读取笔记 frontmatter
func (r *vaultRepository) Metadata(file domain.NoteFile) (*domain.NoteMetadata, bool) {
	if !strings.EqualFold(path.Ext(file.Path), markdownExt) {
		return nil, false
	}
	data, err := os.ReadFile(r.abs(file.Path))
	if err != nil {
		return nil, false
	}

	// properties only count when the block opens the file
	if !bytes.HasPrefix(data, []byte("---")) {
		return &domain.NoteMetadata{}, true
	}

	var fm map[string]any
	_, err = frontmatter.MustParse(bytes.NewReader(data), &fm, yamlFrontmatter)
	switch {
	case errors.Is(err, frontmatter.ErrNotFound):
		return &domain.NoteMetadata{}, true
	case err != nil:
		r.logger.Warn("invalid frontmatter ignored",
			zap.String(logger.FieldPath, file.Path),
			zap.Error(err))
		return &domain.NoteMetadata{}, true
	}

	if fm == nil {
		fm = map[string]any{}
	}
	return &domain.NoteMetadata{Frontmatter: fm}, true
}

// ResolveLink resolves a link target the way Obsidian picks a link destination:
//  1. relative to the source note's folder
//  2. from the vault root
//  3. both again with ".md" appended when the target has no extension
//  4. any file whose path ends with the target, preferring the source folder,
//     then the shortest path
//
// ResolveLink 解析本地链接
func (r *vaultRepository) ResolveLink(linkTarget, sourcePath string) (domain.NoteFile, bool) {
	target := util.LinkTarget(linkTarget)
	if target == "" {
		return domain.NoteFile{}, false
	}
	sourceDir := path.Dir(strings.ReplaceAll(sourcePath, "\\", "/"))
	if sourcePath == "" {
		sourceDir = "."
	}

	candidates := []string{path.Join(sourceDir, target), target}
	if path.Ext(target) == "" {
		candidates = append(candidates, path.Join(sourceDir, target)+markdownExt, target+markdownExt)
	}
	for _, c := range candidates {
		if f, ok := r.File(c); ok {
			return f, true
		}
	}

	return r.findBySuffix(target, sourceDir)
}

func (r *vaultRepository) findBySuffix(target, sourceDir string) (domain.NoteFile, bool) {
	want, ok := cleanVaultPath(strings.TrimSuffix(target, markdownExt))
	if !ok {
		return domain.NoteFile{}, false
	}

	var matches []string
	_ = r.walk(r.root, func(rel string) {
		for _, v := range util.GeneratePathVariations(rel) {
			if v == want {
				matches = append(matches, rel)
				return
			}
		}
	})
	if len(matches) == 0 {
		return domain.NoteFile{}, false
	}

	sort.SliceStable(matches, func(i, j int) bool {
		si, sj := path.Dir(matches[i]) == sourceDir, path.Dir(matches[j]) == sourceDir
		if si != sj {
			return si
		}
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) < len(matches[j])
		}
		return matches[i] < matches[j]
	})
	return newNoteFile(matches[0]), true
}

// ListFiles 递归列出文件夹中扩展名匹配的文件，folder 为空或 "/" 表示整个仓库
func (r *vaultRepository) ListFiles(folder string, exts []string) ([]domain.NoteFile, error) {
	dir := r.root
	if f := strings.Trim(strings.TrimSpace(folder), "/"); f != "" {
		rel, ok := cleanVaultPath(f)
		if !ok || !fsutil.IsDir(r.abs(rel)) {
			return nil, errors.Wrapf(domain.ErrFolderNotFound, "folder %s", folder)
		}
		dir = r.abs(rel)
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	var files []domain.NoteFile
	err := r.walk(dir, func(rel string) {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(rel), "."))
		if len(allowed) == 0 || allowed[ext] {
			files = append(files, newNoteFile(rel))
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", folder)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// walk visits every regular file under dir, skipping hidden entries such as .obsidian.
func (r *vaultRepository) walk(dir string, visit func(rel string)) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return err
		}
		visit(filepath.ToSlash(rel))
		return nil
	})
}
