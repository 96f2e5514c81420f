// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/haierkeys/note-discord-share/internal/dao"
	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/internal/service"
	"github.com/haierkeys/note-discord-share/pkg/code"
	"github.com/haierkeys/note-discord-share/pkg/discord"
	"github.com/haierkeys/note-discord-share/pkg/validator"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger

	// Repository 层
	Vault       domain.Vault
	SettingRepo domain.SettingsRepository

	// 基础设施组件
	Client    *discord.Client
	Validator *validator.Validator

	// Service 层
	SettingService service.SettingService
	ShareService   service.ShareService
	FileService    service.FileService
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// chooser: 多个 webhook 时的交互选择器（可选）
// notifier: 用户提示输出（可选）
func NewApp(cfg *AppConfig, logger *zap.Logger, chooser service.DestinationChooser, notifier service.Notifier) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := code.SetGlobalDefaultLang(cfg.Lang); err != nil {
		logger.Warn("unsupported notice language, falling back",
			zap.String("lang", cfg.Lang),
			zap.String("fallback", code.GetGlobalDefaultLang()))
	}

	a := &App{
		config: cfg,
		logger: logger,
	}

	vault, err := dao.NewVaultRepository(cfg.VaultRoot(), logger)
	if err != nil {
		return nil, err
	}
	a.Vault = vault
	a.SettingRepo = dao.NewSettingRepository(cfg.SettingsPath(), logger)

	a.Validator, err = validator.New()
	if err != nil {
		return nil, err
	}
	a.Client = discord.NewClient(cfg.GetDiscordConfig(), logger)

	svcConfig := &service.ServiceConfig{
		Share: service.ShareServiceConfig{
			BroadcastLimit: cfg.Delivery.BroadcastLimit,
		},
	}

	a.SettingService = service.NewSettingService(a.SettingRepo, a.Validator, logger)
	a.ShareService = service.NewShareService(a.Vault, a.Client, chooser, notifier, svcConfig, logger)
	a.FileService = service.NewFileService(a.Vault, logger)

	logger.Debug("app container initialized",
		zap.String("vault", a.Vault.Root()),
		zap.String("settings", a.SettingRepo.Location()))

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Settings 获取当前设置快照，每次分享都应使用独立的快照
func (a *App) Settings(ctx context.Context) (*domain.Settings, error) {
	return a.SettingService.Snapshot(ctx)
}

// Close 刷新日志
func (a *App) Close() error {
	_ = a.logger.Sync()
	return nil
}
