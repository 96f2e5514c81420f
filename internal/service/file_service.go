// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
	apperrors "github.com/haierkeys/note-discord-share/pkg/errors"
	"github.com/haierkeys/note-discord-share/pkg/logger"
)

// FileService defines the attachment lookup service interface
// FileService 定义附件查询服务接口
type FileService interface {
	// Suggestions lists shareable attachments whose path contains query,
	// capped at the configured suggestion limit
	// Suggestions 列出可分享的附件，按设置的数量上限截断
	Suggestions(ctx context.Context, s *domain.Settings, query string) ([]domain.NoteFile, error)
}

// fileService 实现 FileService 接口
type fileService struct {
	vault  domain.Vault
	logger *zap.Logger
}

// NewFileService 创建 FileService 实例
func NewFileService(vault domain.Vault, lg *zap.Logger) FileService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &fileService{vault: vault, logger: lg}
}

// Suggestions 列出可分享的附件
func (f *fileService) Suggestions(ctx context.Context, s *domain.Settings, query string) ([]domain.NoteFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formats := s.AttachmentFormats
	if len(formats) == 0 {
		formats = domain.DefaultAttachmentFormats
	}

	files, err := f.vault.ListFiles(s.AttachmentsFolder, formats)
	if err != nil {
		if errors.Is(err, domain.ErrFolderNotFound) {
			f.logger.Warn("attachments folder not found", zap.String(logger.FieldPath, s.AttachmentsFolder))
			return nil, code.ErrorAttachmentsFolder
		}
		return nil, apperrors.NewAppError(code.Failed.WithDetails(err.Error()), err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	limit := s.LocalSuggestionsLimit
	out := make([]domain.NoteFile, 0, len(files))
	for _, file := range files {
		if query != "" && !strings.Contains(strings.ToLower(file.Path), query) {
			continue
		}
		out = append(out, file)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
