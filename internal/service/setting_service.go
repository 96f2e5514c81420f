// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/internal/upgrade"
	"github.com/haierkeys/note-discord-share/pkg/code"
	"github.com/haierkeys/note-discord-share/pkg/convert"
	apperrors "github.com/haierkeys/note-discord-share/pkg/errors"
	"github.com/haierkeys/note-discord-share/pkg/logger"
	"github.com/haierkeys/note-discord-share/pkg/validator"
)

// settings keys that `Set` refuses to touch
var readOnlySettingKeys = map[string]bool{
	"version":           true,
	"discordWebhookURL": true,
}

// SettingService defines the settings business service interface
// SettingService 定义设置业务服务接口
type SettingService interface {
	// Snapshot returns a deep copy of the current settings, loading them on first use
	// Snapshot 返回当前设置的深拷贝
	Snapshot(ctx context.Context) (*domain.Settings, error)

	// Migrate forces the legacy migration and saves the result
	// Migrate 强制执行设置迁移并保存
	Migrate(ctx context.Context) (bool, error)

	// ListWebhooks 列出全部 webhook
	ListWebhooks(ctx context.Context) ([]domain.WebhookDestination, error)

	// AddWebhook 添加 webhook
	AddWebhook(ctx context.Context, description, url string) error

	// RemoveWebhook 按描述删除 webhook
	RemoveWebhook(ctx context.Context, description string) error

	// Set updates one scalar setting by its dotted JSON key,
	// e.g. "embedDefaultValues.embedDefaultAuthor.name"
	// Set 按 JSON 键路径修改一个设置项
	Set(ctx context.Context, key, value string) error

	// Keys lists every key accepted by Set
	// Keys 列出 Set 支持的全部键
	Keys() []string

	// AddField 添加默认 embed 字段
	AddField(ctx context.Context, field domain.EmbedField) error

	// RemoveField 按名称删除默认 embed 字段
	RemoveField(ctx context.Context, name string) error

	// Location 设置文件路径
	Location() string
}

// settingService 实现 SettingService 接口
type settingService struct {
	repo      domain.SettingsRepository
	migrator  *upgrade.MigrationManager
	validator *validator.Validator
	sf        *singleflight.Group
	logger    *zap.Logger

	mu       sync.Mutex
	settings *domain.Settings
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(repo domain.SettingsRepository, v *validator.Validator, lg *zap.Logger) SettingService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &settingService{
		repo:      repo,
		migrator:  upgrade.NewMigrationManager(lg),
		validator: v,
		sf:        &singleflight.Group{},
		logger:    lg,
	}
}

func (s *settingService) Location() string {
	return s.repo.Location()
}

// Snapshot 返回当前设置的深拷贝
func (s *settingService) Snapshot(ctx context.Context) (*domain.Settings, error) {
	if _, err := s.current(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := convert.DeepCopy(s.settings)
	if err != nil {
		return nil, apperrors.NewAppError(code.ErrorSettingsLoad, err)
	}
	normalizeSettings(snap)
	return snap, nil
}

// current loads the settings once; concurrent first callers share one load.
func (s *settingService) current(ctx context.Context) (*domain.Settings, error) {
	s.mu.Lock()
	loaded := s.settings
	s.mu.Unlock()
	if loaded != nil {
		return loaded, nil
	}

	v, err, _ := s.sf.Do("load", func() (any, error) {
		settings, _, err := s.load(ctx, false)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.settings == nil {
			s.settings = settings
		}
		return s.settings, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Settings), nil
}

// load reads the stored document, migrates it when its version tag is absent
// or stale, and backfills it onto the initial settings. A migrated document is
// written back.
func (s *settingService) load(ctx context.Context, force bool) (*domain.Settings, bool, error) {
	raw, found, err := s.repo.LoadRaw(ctx)
	if err != nil {
		return nil, false, apperrors.NewAppError(code.ErrorSettingsLoad.WithDetails(err.Error()), err)
	}
	if !found {
		s.logger.Debug("settings file not found, using initial settings", zap.String(logger.FieldPath, s.repo.Location()))
		return domain.InitialSettings(), false, nil
	}

	if force {
		delete(raw, "version")
	}
	migrated, err := s.migrator.Run(ctx, raw)
	if err != nil {
		return nil, false, apperrors.NewAppError(code.ErrorSettingsLoad.WithDetails(err.Error()), err)
	}

	settings := domain.InitialSettings()
	if err := convert.MapToStruct(raw, settings); err != nil {
		return nil, false, apperrors.NewAppError(code.ErrorSettingsLoad.WithDetails(err.Error()), err)
	}
	normalizeSettings(settings)
	if settings.LocalSuggestionsLimit <= 0 {
		settings.LocalSuggestionsLimit = domain.InitialSettings().LocalSuggestionsLimit
	}

	if msgs := s.validate(settings); len(msgs) > 0 {
		s.logger.Warn("stored settings are invalid", zap.Strings("problems", msgs))
	}

	if migrated {
		if err := s.repo.Save(ctx, settings); err != nil {
			return nil, false, apperrors.NewAppError(code.ErrorSettingsSave.WithDetails(err.Error()), err)
		}
		s.logger.Info("settings migrated", zap.String(logger.FieldVersion, settings.Version))
	}
	return settings, migrated, nil
}

// Migrate 强制执行设置迁移并保存
func (s *settingService) Migrate(ctx context.Context) (bool, error) {
	settings, migrated, err := s.load(ctx, true)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return migrated, nil
}

// ListWebhooks 列出全部 webhook
func (s *settingService) ListWebhooks(ctx context.Context) ([]domain.WebhookDestination, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Webhooks, nil
}

// AddWebhook 添加 webhook
func (s *settingService) AddWebhook(ctx context.Context, description, url string) error {
	description = strings.TrimSpace(description)
	url = domain.ModernWebhookURL(strings.TrimSpace(url))
	if description == "" {
		return code.ErrorInvalidParams.WithDetails("description is required")
	}

	return s.update(ctx, func(next *domain.Settings) error {
		for _, d := range next.Webhooks {
			if sameDescription(d.Description, description) {
				return code.ErrorWebhookExists.WithArgs(description)
			}
		}
		dest := domain.WebhookDestination{Description: description, URL: url}
		if msgs := s.validate(&dest); len(msgs) > 0 {
			return code.ErrorWebhookInvalid.WithArgs(url).WithDetails(msgs...)
		}
		next.Webhooks = append(next.Webhooks, dest)
		return nil
	})
}

// RemoveWebhook 按描述删除 webhook
func (s *settingService) RemoveWebhook(ctx context.Context, description string) error {
	return s.update(ctx, func(next *domain.Settings) error {
		for i, d := range next.Webhooks {
			if sameDescription(d.Description, description) {
				next.Webhooks = append(next.Webhooks[:i], next.Webhooks[i+1:]...)
				return nil
			}
		}
		return code.ErrorDestinationUnknown.WithArgs(description)
	})
}

// AddField 添加默认 embed 字段
func (s *settingService) AddField(ctx context.Context, field domain.EmbedField) error {
	if strings.TrimSpace(field.Name) == "" {
		return code.ErrorInvalidParams.WithDetails("field name is required")
	}
	return s.update(ctx, func(next *domain.Settings) error {
		next.Defaults.Fields = append(next.Defaults.Fields, field)
		return nil
	})
}

// RemoveField 按名称删除默认 embed 字段（删除第一个匹配项）
func (s *settingService) RemoveField(ctx context.Context, name string) error {
	return s.update(ctx, func(next *domain.Settings) error {
		for i, f := range next.Defaults.Fields {
			if f.Name == name {
				next.Defaults.Fields = append(next.Defaults.Fields[:i], next.Defaults.Fields[i+1:]...)
				return nil
			}
		}
		return code.ErrorFieldNotFound.WithArgs(name)
	})
}

// Set 按 JSON 键路径修改一个设置项
func (s *settingService) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if readOnlySettingKeys[key] {
		return code.ErrorSettingKeyUnknown.WithArgs(key)
	}

	return s.update(ctx, func(next *domain.Settings) error {
		doc, err := convert.StructToMap(next)
		if err != nil {
			return errors.Wrap(err, "settings to map")
		}
		parts := strings.Split(key, ".")
		parent := doc
		for _, p := range parts[:len(parts)-1] {
			m, ok := parent[p].(map[string]any)
			if !ok {
				return code.ErrorSettingKeyUnknown.WithArgs(key)
			}
			parent = m
		}
		leaf := parts[len(parts)-1]
		old, ok := parent[leaf]
		if !ok {
			return code.ErrorSettingKeyUnknown.WithArgs(key)
		}

		switch old.(type) {
		case string:
			parent[leaf] = value
		case bool:
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return code.ErrorInvalidParams.WithDetails(key + ": expected true or false")
			}
			parent[leaf] = b
		case float64:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return code.ErrorInvalidParams.WithDetails(key + ": expected an integer")
			}
			parent[leaf] = n
		default:
			return code.ErrorSettingKeyUnknown.WithArgs(key)
		}

		updated := domain.InitialSettings()
		if err := convert.MapToStruct(doc, updated); err != nil {
			return errors.Wrap(err, "map to settings")
		}
		normalizeSettings(updated)
		*next = *updated
		return nil
	})
}

// Keys 列出 Set 支持的全部键
func (s *settingService) Keys() []string {
	doc, err := convert.StructToMap(domain.InitialSettings())
	if err != nil {
		return nil
	}
	var keys []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			full := k
			if prefix != "" {
				full = prefix + "." + k
			}
			switch t := v.(type) {
			case map[string]any:
				walk(full, t)
			case string, bool, float64:
				if !readOnlySettingKeys[full] {
					keys = append(keys, full)
				}
			}
		}
	}
	walk("", doc)
	sort.Strings(keys)
	return keys
}

// update applies fn to a copy of the settings, validates and saves the whole
// aggregate, then swaps it in. Snapshots handed out earlier are unaffected.
func (s *settingService) update(ctx context.Context, fn func(next *domain.Settings) error) error {
	current, err := s.current(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := convert.DeepCopy(current)
	if err != nil {
		return apperrors.NewAppError(code.ErrorSettingsSave, err)
	}
	if err := fn(next); err != nil {
		return err
	}
	normalizeSettings(next)
	next.Version = domain.SettingsVersion

	if msgs := s.validate(next); len(msgs) > 0 {
		return code.ErrorSettingsInvalid.WithDetails(msgs...)
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return apperrors.NewAppError(code.ErrorSettingsSave.WithDetails(err.Error()), err)
	}
	s.settings = next
	return nil
}

func (s *settingService) validate(v any) []string {
	if s.validator == nil {
		return nil
	}
	msgs, err := s.validator.Struct(v)
	if err != nil {
		return []string{err.Error()}
	}
	return msgs
}

// normalizeSettings replaces nil lists with empty ones.
func normalizeSettings(s *domain.Settings) {
	if s.Webhooks == nil {
		s.Webhooks = []domain.WebhookDestination{}
	}
	if s.AttachmentFormats == nil {
		s.AttachmentFormats = append([]string(nil), domain.DefaultAttachmentFormats...)
	}
	if s.Defaults.Fields == nil {
		s.Defaults.Fields = []domain.EmbedField{}
	}
}
