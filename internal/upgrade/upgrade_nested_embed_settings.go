package upgrade

import (
	"context"
	"strings"

	"github.com/haierkeys/note-discord-share/internal/domain"
)

// legacy flat key -> nested override key
var legacyOverrideKeys = [][2]string{
	{"embedTitle", "embedTitlePropertyOverride"},
	{"embedURL", "embedURLPropertyOverride"},
	{"embedAuthor", "embedAuthorPropertyOverride"},
	{"embedDescription", "embedDescriptionPropertyOverride"},
	{"embedThumbnail", "embedThumbnailPropertyOverride"},
	{"embedFields", "embedFieldsPropertyOverride"},
	{"embedImage", "embedImagePropertyOverride"},
	{"embedFooter", "embedFooterPropertyOverride"},
}

const (
	legacyColorKey     = "embedColor"
	defaultValuesKey   = "embedDefaultValues"
	defaultColorKey    = "embedDefaultColor"
	overridesKey       = "embedPropertyOverrides"
	webhooksKey        = "discordWebhookURL"
	legacyWebhookLabel = "Default"
)

// NestedEmbedSettings moves the flat pre-1.0 settings into the nested shape:
//   - embedTitle, embedURL, ... become embedPropertyOverrides.embed*PropertyOverride
//   - embedColor becomes embedDefaultValues.embedDefaultColor
//   - a single discordWebhookURL string becomes a one-element destination list
//
// Values already present in the nested shape are kept.
type NestedEmbedSettings struct{}

func (m *NestedEmbedSettings) Version() string {
	return "1.0.0"
}

func (m *NestedEmbedSettings) Description() string {
	return "Move flat embed settings into embedPropertyOverrides / embedDefaultValues"
}

func (m *NestedEmbedSettings) Up(ctx context.Context, raw map[string]any) error {
	overrides := subMap(raw, overridesKey)
	for _, k := range legacyOverrideKeys {
		flat, nested := k[0], k[1]
		if v, ok := raw[flat].(string); ok && v != "" && isBlank(overrides[nested]) {
			overrides[nested] = v
		}
		delete(raw, flat)
	}
	raw[overridesKey] = overrides

	defaults := subMap(raw, defaultValuesKey)
	if v, ok := raw[legacyColorKey].(string); ok && v != "" && isBlank(defaults[defaultColorKey]) {
		defaults[defaultColorKey] = v
	}
	delete(raw, legacyColorKey)
	raw[defaultValuesKey] = defaults

	switch v := raw[webhooksKey].(type) {
	case string:
		if url := strings.TrimSpace(v); url != "" {
			raw[webhooksKey] = []any{map[string]any{"description": legacyWebhookLabel, "url": domain.ModernWebhookURL(url)}}
		} else {
			raw[webhooksKey] = []any{}
		}
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if url, ok := m["url"].(string); ok {
					m["url"] = domain.ModernWebhookURL(url)
				}
			}
		}
	case nil:
		raw[webhooksKey] = []any{}
	}
	return nil
}

func subMap(raw map[string]any, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return v == nil || (ok && s == "")
}
