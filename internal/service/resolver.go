package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haierkeys/note-discord-share/internal/domain"
)

// ParameterResolver builds EmbedParameters from a note's frontmatter.
// ParameterResolver 根据笔记 frontmatter 解析 embed 参数
type ParameterResolver struct {
	metadata domain.MetadataLookup
	names    domain.DisplayNamer
}

// NewParameterResolver 创建 ParameterResolver 实例
func NewParameterResolver(metadata domain.MetadataLookup, names domain.DisplayNamer) *ParameterResolver {
	return &ParameterResolver{metadata: metadata, names: names}
}

// Resolve returns the embed parameters for file, or false when the note has no
// metadata record or no frontmatter block. Each field takes, in order, the
// override key, the built-in key, then the settings default. Color checks the
// built-in key before the override key.
// Resolve 解析笔记的 embed 参数，笔记没有 frontmatter 时返回 false
func (r *ParameterResolver) Resolve(file domain.NoteFile, s *domain.Settings) (*domain.EmbedParameters, bool) {
	meta, ok := r.metadata.Metadata(file)
	if !ok || meta == nil || meta.Frontmatter == nil {
		return nil, false
	}
	fm := meta.Frontmatter
	o := s.Overrides
	d := s.Defaults

	params := &domain.EmbedParameters{
		SourceFile: &file,
	}

	// reversed on purpose: the built-in key is checked first for color only
	if v, ok := lookup(fm, domain.KeyColor, o.Color); ok {
		params.Color = domain.ParseColor(v)
	} else {
		params.Color = domain.ColorFromString(d.Color)
	}

	if s.UseNoteTitleForEmbed {
		params.Title = r.names.DisplayName(file)
	} else if v, ok := lookup(fm, o.Title, domain.KeyTitle); ok {
		params.Title = toText(v)
	} else {
		params.Title = d.Title
	}

	if v, ok := lookup(fm, o.URL, domain.KeyURL); ok {
		params.URL = toText(v)
	} else {
		params.URL = d.URL
	}

	if v, ok := lookup(fm, o.Author, domain.KeyAuthor); ok {
		params.Author = toAuthor(v)
	} else if d.Author.IsComplete() {
		author := d.Author
		params.Author = &author
	}

	if v, ok := lookup(fm, o.Description, domain.KeyDescription); ok {
		params.Description = toText(v)
	} else {
		params.Description = d.Description
	}

	if v, ok := lookup(fm, o.Thumbnail, domain.KeyThumbnail); ok {
		params.Thumbnail = domain.ParseImageRef(v)
	} else {
		params.Thumbnail = domain.ParseImageRef(d.Thumbnail)
	}

	if v, ok := lookup(fm, o.Fields, domain.KeyFields); ok {
		params.Fields = toFields(v)
	} else {
		params.Fields = append([]domain.EmbedField{}, d.Fields...)
	}

	if v, ok := lookup(fm, o.Image, domain.KeyImage); ok {
		params.Image = domain.ParseImageRef(v)
	} else {
		params.Image = domain.ParseImageRef(d.Image)
	}

	if v, ok := lookup(fm, o.Footer, domain.KeyFooter); ok {
		params.Footer = toFooter(v)
	} else if d.Footer.IsComplete() {
		footer := d.Footer
		params.Footer = &footer
	}

	return params, true
}

// lookup returns the value of the first key present in fm. Empty keys are
// skipped. A key is present when its value is set and not an empty string or false.
func lookup(fm map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		v, ok := fm[k]
		if ok && isPresent(v) {
			return v, true
		}
	}
	return nil, false
}

func isPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}
	return true
}

// toText renders a scalar frontmatter value as text; lists are joined with ", ".
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := toText(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return ""
	}
	return fmt.Sprint(v)
}

// firstText returns the first non-empty text value among keys of m.
func firstText(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := toText(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// toAuthor accepts {name, url, iconURL | icon_url} or a bare name.
func toAuthor(v any) *domain.EmbedAuthor {
	switch t := v.(type) {
	case map[string]any:
		return &domain.EmbedAuthor{
			Name:    firstText(t, "name"),
			URL:     firstText(t, "url"),
			IconURL: firstText(t, "iconURL", "icon_url", "iconUrl"),
		}
	case string:
		return &domain.EmbedAuthor{Name: t}
	}
	return nil
}

// toFooter accepts {text, iconURL | icon_url} or bare text.
func toFooter(v any) *domain.EmbedFooter {
	switch t := v.(type) {
	case map[string]any:
		return &domain.EmbedFooter{
			Text:    firstText(t, "text"),
			IconURL: firstText(t, "iconURL", "icon_url", "iconUrl"),
		}
	case string:
		return &domain.EmbedFooter{Text: t}
	}
	return nil
}

// toFields reads a list of {name, value, inline}. Entries without a name are
// dropped. A value that is not a list yields an empty, non-nil list.
func toFields(v any) []domain.EmbedField {
	fields := []domain.EmbedField{}
	list, ok := v.([]any)
	if !ok {
		return fields
	}
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name := firstText(m, "name")
		if name == "" {
			continue
		}
		inline, _ := m["inline"].(bool)
		fields = append(fields, domain.EmbedField{
			Name:   name,
			Value:  toText(m["value"]),
			Inline: inline,
		})
	}
	return fields
}
