// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
	"github.com/haierkeys/note-discord-share/pkg/discord"
	apperrors "github.com/haierkeys/note-discord-share/pkg/errors"
	"github.com/haierkeys/note-discord-share/pkg/logger"
	"github.com/haierkeys/note-discord-share/pkg/util"
)

// legacyAttachmentsDir is the folder name probed by the attachment fallbacks.
const legacyAttachmentsDir = "attachments/"

// Notifier shows user-facing notices. Implementations are called from one
// goroutine at a time.
// Notifier 向用户展示提示
type Notifier interface {
	Success(c *code.Code)
	Failure(err *apperrors.AppError)
}

// Sender delivers payloads to one webhook endpoint.
// Sender 投递 webhook 请求
type Sender interface {
	SendEmbed(ctx context.Context, endpoint string, payload *discord.WebhookPayload, files []discord.File) error
	SendAttachment(ctx context.Context, endpoint string, identity discord.Identity, file discord.File) error
}

// ShareService defines the share business service interface
// ShareService 定义分享业务服务接口
//
// Every method takes the settings snapshot to work on. Failures are reported
// through the Notifier and also returned as *errors.AppError.
type ShareService interface {
	// ShareProperties shares the embed described by a note's frontmatter
	// ShareProperties 根据笔记 frontmatter 分享 embed
	ShareProperties(ctx context.Context, s *domain.Settings, notePath string, target ShareTarget) error

	// ShareContent shares a note's sanitized body under its display name
	// ShareContent 分享笔记正文
	ShareContent(ctx context.Context, s *domain.Settings, notePath string, target ShareTarget) error

	// ShareSelection shares a piece of text; notePath may be empty
	// ShareSelection 分享选中文本
	ShareSelection(ctx context.Context, s *domain.Settings, notePath, text string, target ShareTarget) error

	// ShareEmbed assembles params and sends them
	// ShareEmbed 组装并发送 embed
	ShareEmbed(ctx context.Context, s *domain.Settings, params *domain.EmbedParameters, target ShareTarget) error

	// ShareAttachment uploads a vault file as a plain attachment
	// ShareAttachment 上传附件
	ShareAttachment(ctx context.Context, s *domain.Settings, filePath string, target ShareTarget) error
}

// shareService 实现 ShareService 接口
type shareService struct {
	vault     domain.Vault
	resolver  *ParameterResolver
	assembler *PayloadAssembler
	sender    Sender
	chooser   DestinationChooser
	notifier  Notifier
	notifyMu  sync.Mutex
	config    *ServiceConfig
	logger    *zap.Logger
}

// NewShareService 创建 ShareService 实例
func NewShareService(vault domain.Vault, sender Sender, chooser DestinationChooser, notifier Notifier, config *ServiceConfig, lg *zap.Logger) ShareService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if config == nil {
		config = &ServiceConfig{}
	}
	return &shareService{
		vault:     vault,
		resolver:  NewParameterResolver(vault, vault),
		assembler: NewPayloadAssembler(vault, vault, lg),
		sender:    sender,
		chooser:   chooser,
		notifier:  notifier,
		config:    config,
		logger:    lg,
	}
}

// ShareProperties 根据笔记 frontmatter 分享 embed
func (svc *shareService) ShareProperties(ctx context.Context, s *domain.Settings, notePath string, target ShareTarget) error {
	file, err := svc.noteFile(notePath)
	if err != nil {
		return svc.fail(err)
	}
	params, ok := svc.resolver.Resolve(file, s)
	if !ok {
		return svc.fail(code.ErrorMissingMetadata.WithArgs(file.Name))
	}
	return svc.ShareEmbed(ctx, s, params, target)
}

// ShareContent 分享笔记正文
func (svc *shareService) ShareContent(ctx context.Context, s *domain.Settings, notePath string, target ShareTarget) error {
	file, err := svc.noteFile(notePath)
	if err != nil {
		return svc.fail(err)
	}
	content, err := svc.vault.ReadText(file)
	if err != nil {
		return svc.fail(apperrors.NewAppError(code.ErrorNoteRead.WithArgs(file.Path), err))
	}
	params := &domain.EmbedParameters{
		Title:       svc.vault.DisplayName(file),
		Description: util.SanitizeMarkdown(content),
		SourceFile:  &file,
	}
	return svc.ShareEmbed(ctx, s, params, target)
}

// ShareSelection 分享选中文本
func (svc *shareService) ShareSelection(ctx context.Context, s *domain.Settings, notePath, text string, target ShareTarget) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return svc.fail(code.ErrorEmptySelection)
	}
	params := &domain.EmbedParameters{Description: util.SanitizeMarkdown(text)}
	if notePath != "" {
		file, err := svc.noteFile(notePath)
		if err != nil {
			return svc.fail(err)
		}
		params.SourceFile = &file
	}
	return svc.ShareEmbed(ctx, s, params, target)
}

// ShareEmbed 组装并发送 embed
func (svc *shareService) ShareEmbed(ctx context.Context, s *domain.Settings, params *domain.EmbedParameters, target ShareTarget) error {
	destinations, err := SelectDestinations(ctx, s, target, svc.chooser)
	if err != nil {
		return svc.fail(err)
	}

	assembled := svc.assembler.Assemble(params, s.Defaults)
	payload := &discord.WebhookPayload{
		Username:  s.BotUsername(),
		AvatarURL: s.BotAvatarURL(),
		Embeds:    []discord.Embed{assembled.Embed},
	}

	return svc.broadcast(ctx, destinations, func(ctx context.Context, d domain.WebhookDestination) error {
		err := svc.sender.SendEmbed(ctx, d.URL, payload, assembled.Files)
		if err == nil {
			svc.success(code.SuccessShareEmbed, d)
			return nil
		}
		c := code.ErrorEmbedFailed.WithArgs(err.Error())
		if discord.IsPayloadTooLarge(err) {
			c = code.ErrorEmbedTooLarge
		}
		return svc.deliveryFailure(c, d, err)
	})
}

// ShareAttachment 上传附件
func (svc *shareService) ShareAttachment(ctx context.Context, s *domain.Settings, filePath string, target ShareTarget) error {
	destinations, err := SelectDestinations(ctx, s, target, svc.chooser)
	if err != nil {
		return svc.fail(err)
	}

	file, ok := svc.findAttachment(s, filePath)
	if !ok {
		return svc.fail(code.ErrorAttachmentNotFound.WithDetails(filePath))
	}
	data, err := svc.vault.ReadBinary(file)
	if err != nil {
		return svc.fail(apperrors.NewAppError(code.ErrorAttachmentFailed.WithArgs(file.Name, err.Error()), err))
	}

	identity := discord.Identity{Username: s.BotUsername(), AvatarURL: s.BotAvatarURL()}
	upload := discord.File{Name: file.Name, Data: data}

	return svc.broadcast(ctx, destinations, func(ctx context.Context, d domain.WebhookDestination) error {
		err := svc.sender.SendAttachment(ctx, d.URL, identity, upload)
		if err == nil {
			svc.success(code.SuccessShareAttachment.WithArgs(file.Name), d)
			return nil
		}
		c := code.ErrorAttachmentFailed.WithArgs(file.Name, err.Error())
		if discord.IsPayloadTooLarge(err) {
			c = code.ErrorAttachmentTooLarge.WithArgs(file.Name)
		}
		return svc.deliveryFailure(c, d, err)
	})
}

// findAttachment tries, in order: the path as given, the part from
// "attachments/" on, "attachments/<name>", then the configured attachments folder.
func (svc *shareService) findAttachment(s *domain.Settings, filePath string) (domain.NoteFile, bool) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return domain.NoteFile{}, false
	}
	name := path.Base(strings.ReplaceAll(filePath, "\\", "/"))

	candidates := []string{filePath}
	if !strings.HasPrefix(filePath, legacyAttachmentsDir) {
		if i := strings.Index(filePath, legacyAttachmentsDir); i >= 0 {
			candidates = append(candidates, filePath[i:])
		}
	}
	candidates = append(candidates, legacyAttachmentsDir+name)
	if folder := strings.Trim(s.AttachmentsFolder, "/"); folder != "" {
		candidates = append(candidates, folder+"/"+name)
	}

	for _, c := range candidates {
		if f, ok := svc.vault.File(c); ok {
			return f, true
		}
	}
	return domain.NoteFile{}, false
}

// broadcast runs send once per destination. Each destination gets a single
// attempt; the first failure is returned after all sends finish.
func (svc *shareService) broadcast(ctx context.Context, destinations []domain.WebhookDestination, send func(context.Context, domain.WebhookDestination) error) error {
	if len(destinations) == 1 {
		return send(ctx, destinations[0])
	}
	var g errgroup.Group
	if svc.config.Share.BroadcastLimit > 0 {
		g.SetLimit(svc.config.Share.BroadcastLimit)
	}
	for _, d := range destinations {
		d := d
		g.Go(func() error {
			return send(ctx, d)
		})
	}
	return g.Wait()
}

func (svc *shareService) noteFile(notePath string) (domain.NoteFile, error) {
	if strings.TrimSpace(notePath) == "" {
		return domain.NoteFile{}, code.ErrorNoActiveFile
	}
	if f, ok := svc.vault.File(notePath); ok {
		return f, nil
	}
	if !strings.HasSuffix(strings.ToLower(notePath), ".md") {
		if f, ok := svc.vault.File(notePath + ".md"); ok {
			return f, nil
		}
	}
	return domain.NoteFile{}, code.ErrorNoteNotFound.WithArgs(notePath)
}

func (svc *shareService) success(c *code.Code, d domain.WebhookDestination) {
	svc.logger.Info("share delivered",
		zap.String(logger.FieldWebhook, d.Description),
		zap.Int(logger.FieldStatus, c.Code()))
	if svc.notifier == nil {
		return
	}
	svc.notifyMu.Lock()
	defer svc.notifyMu.Unlock()
	svc.notifier.Success(c.WithContext(d.Description))
}

func (svc *shareService) deliveryFailure(c *code.Code, d domain.WebhookDestination, err error) error {
	appErr := apperrors.NewAppError(c.WithContext(d.Description), err).
		WithDeliveryID(discord.DeliveryIDOf(err))
	svc.logger.Warn("share failed",
		zap.String(logger.FieldWebhook, d.Description),
		zap.String(logger.FieldDeliveryID, appErr.DeliveryID),
		zap.Error(err))
	svc.notify(appErr)
	return appErr
}

// fail converts err into an AppError, reports it and returns it.
func (svc *shareService) fail(err error) error {
	appErr := apperrors.FromError(err)
	svc.notify(appErr)
	return appErr
}

func (svc *shareService) notify(appErr *apperrors.AppError) {
	if svc.notifier == nil {
		return
	}
	svc.notifyMu.Lock()
	defer svc.notifyMu.Unlock()
	svc.notifier.Failure(appErr)
}
