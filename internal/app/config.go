package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/haierkeys/note-discord-share/internal/dao"
	"github.com/haierkeys/note-discord-share/pkg/discord"
	"github.com/haierkeys/note-discord-share/pkg/logger"
	"github.com/haierkeys/note-discord-share/pkg/util"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Log      LogConfig      `yaml:"log"`
	Vault    VaultConfig    `yaml:"vault"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Lang     string         `yaml:"lang" default:"en"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production"`
	// MaxSize 单个日志文件大小上限（MB）
	MaxSize int `yaml:"max-size" default:"10"`
	// MaxBackups 保留的旧日志文件数
	MaxBackups int `yaml:"max-backups" default:"5"`
	// MaxAge 旧日志保留天数
	MaxAge int `yaml:"max-age" default:"30"`
}

// VaultConfig 仓库配置
type VaultConfig struct {
	// Path Obsidian 仓库根目录
	Path string `yaml:"path" default:"."`
	// SettingsFile 插件设置文件，相对路径基于仓库根目录
	SettingsFile string `yaml:"settings-file"`
}

// DeliveryConfig webhook 投递配置
type DeliveryConfig struct {
	// Timeout 单次请求超时，支持格式：30s、1m；为空表示不设超时
	Timeout string `yaml:"timeout"`
	// RatePerMinute 每分钟最多请求数，0 表示不限速
	RatePerMinute int `yaml:"rate-per-minute" default:"30"`
	// Burst 令牌桶容量
	Burst int `yaml:"burst" default:"5"`
	// UserAgent 请求 User-Agent
	UserAgent string `yaml:"user-agent"`
	// BroadcastLimit --all 时的最大并发数，0 表示不限制
	BroadcastLimit int `yaml:"broadcast-limit" default:"4"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 只在解析 YAML 之前设置默认值，避免覆盖显式写入的 false / 0
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	if _, err := c.DeliveryTimeout(); err != nil {
		return nil, realpath, errors.Wrap(err, "invalid delivery.timeout")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// DeliveryTimeout 解析投递超时，为空返回 0
func (c *AppConfig) DeliveryTimeout() (time.Duration, error) {
	return util.ParseDuration(c.Delivery.Timeout)
}

// GetDiscordConfig 获取 webhook 客户端配置
func (c *AppConfig) GetDiscordConfig() discord.Config {
	timeout, _ := c.DeliveryTimeout()
	ua := c.Delivery.UserAgent
	if ua == "" {
		ua = UserAgent()
	}
	return discord.Config{
		Timeout:       timeout,
		RatePerMinute: c.Delivery.RatePerMinute,
		Burst:         c.Delivery.Burst,
		UserAgent:     ua,
	}
}

// GetLoggerConfig 获取日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}

// VaultRoot 仓库根目录绝对路径，相对路径基于配置文件所在目录
func (c *AppConfig) VaultRoot() string {
	p := c.Vault.Path
	if p == "" {
		p = "."
	}
	if !filepath.IsAbs(p) && c.File != "" {
		p = filepath.Join(filepath.Dir(c.File), p)
	}
	return filepath.Clean(p)
}

// SettingsPath 插件设置文件绝对路径
func (c *AppConfig) SettingsPath() string {
	p := c.Vault.SettingsFile
	if p == "" {
		p = filepath.FromSlash(dao.DefaultSettingsFile)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.VaultRoot(), p)
}
