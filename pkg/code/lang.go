package code

import (
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// lang type, used to store English and Chinese text
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const (
	LangEN   = "en"
	LangZhCN = "zh_cn"

	FALLBACK_LNG = LangEN
)

// Default language is English // 默认语言为英文
var lng atomic.Value

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.SimplifiedChinese,
})

// GetMessage returns the message for the global language, falling back to English.
// GetMessage 方法根据全局语言返回相应的消息
func (l lang) GetMessage() string {
	if GetGlobalDefaultLang() == LangZhCN && l.zh_cn != "" {
		return l.zh_cn
	}
	return l.en
}

// GetSupportedLanguages returns all languages supported by the lang type
// GetSupportedLanguages 函数返回 lang 类型支持的所有语言
func GetSupportedLanguages() []string {
	return []string{LangEN, LangZhCN}
}

// SetGlobalDefaultLang sets the global language from a name or BCP 47 tag
// ("en", "zh_cn", "zh-CN", "zh-Hans", "en-US" ...).
// 设置全局默认语言
func SetGlobalDefaultLang(name string) error {
	switch name {
	case LangEN, LangZhCN:
		lng.Store(name)
		return nil
	case "":
		lng.Store(FALLBACK_LNG)
		return nil
	}

	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		lng.Store(FALLBACK_LNG)
		return errors.Wrapf(err, "unsupported language %q, set defaulting to %s", name, FALLBACK_LNG)
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		lng.Store(FALLBACK_LNG)
		return errors.Errorf("unsupported language %q, set defaulting to %s", name, FALLBACK_LNG)
	}
	lng.Store(GetSupportedLanguages()[index])
	return nil
}

// GetGlobalDefaultLang gets the global default language
// 获取全局默认语言
func GetGlobalDefaultLang() string {
	if v, ok := lng.Load().(string); ok && v != "" {
		return v
	}
	return FALLBACK_LNG
}
