// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"strings"

	"github.com/creasty/defaults"
)

// SettingsVersion 当前设置结构版本
const SettingsVersion = "1.0.0"

// Built-in bot identity used when the settings leave it blank.
const (
	DefaultBotUsername  = "Obsidian Share"
	DefaultBotAvatarURL = "https://avatars.githubusercontent.com/u/65011256"
)

// Built-in frontmatter keys, one per embed field.
const (
	KeyColor       = "ods-color"
	KeyTitle       = "ods-title"
	KeyURL         = "ods-url"
	KeyAuthor      = "ods-author"
	KeyDescription = "ods-description"
	KeyThumbnail   = "ods-thumbnail-url"
	KeyFields      = "ods-fields"
	KeyImage       = "ods-image"
	KeyFooter      = "ods-footer"
)

// DefaultAttachmentFormats 默认可分享的附件扩展名
var DefaultAttachmentFormats = []string{"png", "jpg", "jpeg", "gif", "bmp", "svg", "webp"}

// WebhookDestination 一个 Discord webhook 目标
type WebhookDestination struct {
	Description string `json:"description" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
}

// DefaultValueSet 每个字段的全局默认值
type DefaultValueSet struct {
	Title       string       `json:"embedDefaultTitle"`
	Color       string       `json:"embedDefaultColor"`
	URL         string       `json:"embedDefaultURL"`
	Author      EmbedAuthor  `json:"embedDefaultAuthor"`
	Description string       `json:"embedDefaultDescription"`
	Thumbnail   string       `json:"embedDefaultThumbnail"`
	Fields      []EmbedField `json:"embedDefaultFields"`
	Image       string       `json:"embedDefaultImage"`
	Footer      EmbedFooter  `json:"embedDefaultFooter"`
}

// PropertyOverrideMap frontmatter key overrides; "" means the built-in key.
// PropertyOverrideMap 每个字段的 frontmatter 键名覆盖，空字符串表示使用内置键
type PropertyOverrideMap struct {
	Title       string `json:"embedTitlePropertyOverride"`
	Color       string `json:"embedColorPropertyOverride"`
	URL         string `json:"embedURLPropertyOverride"`
	Author      string `json:"embedAuthorPropertyOverride"`
	Description string `json:"embedDescriptionPropertyOverride"`
	Thumbnail   string `json:"embedThumbnailPropertyOverride"`
	Fields      string `json:"embedFieldsPropertyOverride"`
	Image       string `json:"embedImagePropertyOverride"`
	Footer      string `json:"embedFooterPropertyOverride"`
}

// Settings 设置聚合根，JSON 结构与插件 data.json 保持一致
type Settings struct {
	Version               string               `json:"version" default:"1.0.0"`
	Webhooks              []WebhookDestination `json:"discordWebhookURL" validate:"dive"`
	AttachmentsFolder     string               `json:"attachmentsFolder"`
	AttachmentFormats     []string             `json:"attachmentFormats"`
	LocalSuggestionsLimit int                  `json:"localSuggestionsLimit" default:"10" validate:"gte=1"`
	ShowPreview           bool                 `json:"showPreviewInLocalModal" default:"true"`
	CustomBotUsername     string               `json:"customBotUsername"`
	CustomBotAvatarURL    string               `json:"customBotAvatarURL"`
	UseNoteTitleForEmbed  bool                 `json:"useNoteTitleForEmbed"`
	Defaults              DefaultValueSet      `json:"embedDefaultValues"`
	Overrides             PropertyOverrideMap  `json:"embedPropertyOverrides"`
}

// InitialSettings returns the built-in initial values that stored settings are merged onto.
// InitialSettings 返回内置初始设置
func InitialSettings() *Settings {
	s := &Settings{}
	// 只在反序列化之前设置默认值，否则会覆盖用户显式保存的 false / 0
	_ = defaults.Set(s)
	s.Webhooks = []WebhookDestination{}
	s.AttachmentFormats = append([]string(nil), DefaultAttachmentFormats...)
	s.Defaults.Fields = []EmbedField{}
	return s
}

// BotUsername 返回 webhook 用户名，未设置时使用内置值
func (s *Settings) BotUsername() string {
	if s.CustomBotUsername != "" {
		return s.CustomBotUsername
	}
	return DefaultBotUsername
}

// BotAvatarURL 返回 webhook 头像，未设置时使用内置值
func (s *Settings) BotAvatarURL() string {
	if s.CustomBotAvatarURL != "" {
		return s.CustomBotAvatarURL
	}
	return DefaultBotAvatarURL
}

// ModernWebhookURL rewrites the legacy discordapp.com host to discord.com.
func ModernWebhookURL(url string) string {
	return strings.Replace(url, "discordapp.com", "discord.com", 1)
}

// HasDestinations reports whether any share action can be offered.
func (s *Settings) HasDestinations() bool {
	return s != nil && len(s.Webhooks) > 0
}

// SettingsRepository 设置持久化接口
type SettingsRepository interface {
	// LoadRaw 读取原始 JSON 文档；文件不存在时 found 为 false
	LoadRaw(ctx context.Context) (raw map[string]any, found bool, err error)
	// Save 整体保存设置
	Save(ctx context.Context, s *Settings) error
	// Location 返回设置文件路径
	Location() string
}
