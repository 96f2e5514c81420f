package dao

import (
	"context"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/logger"
)

// DefaultSettingsFile 插件设置文件相对仓库根目录的路径
const DefaultSettingsFile = ".obsidian/plugins/obsidian-discord-share/data.json"

// settingRepository 实现 domain.SettingsRepository 接口，设置保存为单个 JSON 文档
type settingRepository struct {
	path   string
	logger *zap.Logger
}

// NewSettingRepository 创建 SettingsRepository 实例
func NewSettingRepository(path string, lg *zap.Logger) domain.SettingsRepository {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &settingRepository{path: filepath.Clean(path), logger: lg}
}

func (r *settingRepository) Location() string {
	return r.path
}

// LoadRaw 读取原始设置文档；文件不存在或为空时 found 为 false
func (r *settingRepository) LoadRaw(ctx context.Context) (map[string]any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, exists, err := LoadContentFromFile(r.path)
	if err != nil {
		return nil, false, errors.Wrapf(err, "read settings %s", r.path)
	}
	if !exists || len(data) == 0 {
		return nil, false, nil
	}

	raw := map[string]any{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, false, errors.Wrapf(err, "parse settings %s", r.path)
	}
	return raw, true, nil
}

// Save 整体保存设置
func (r *settingRepository) Save(ctx context.Context, s *domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	if err := SaveContentToFile(r.path, append(data, '\n')); err != nil {
		return errors.Wrapf(err, "write settings %s", r.path)
	}

	r.logger.Debug("settings saved",
		zap.String(logger.FieldPath, r.path),
		zap.String(logger.FieldVersion, s.Version))
	return nil
}
