package service

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/discord"
	"github.com/haierkeys/note-discord-share/pkg/logger"
)

// timestampLayout 与 JS Date.toISOString 一致
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// maxColor 24 位颜色上限
const maxColor = 0xFFFFFF

// namedColors Discord 调色板，键为小写且去除空格与下划线
var namedColors = map[string]int{
	"default":           0,
	"white":             0xffffff,
	"aqua":              0x1abc9c,
	"green":             0x57f287,
	"blue":              0x3498db,
	"yellow":            0xfee75c,
	"purple":            0x9b59b6,
	"luminousvividpink": 0xe91e63,
	"fuchsia":           0xeb459e,
	"gold":              0xf1c40f,
	"orange":            0xe67e22,
	"red":               0xed4245,
	"grey":              0x95a5a6,
	"navy":              0x34495e,
	"darkaqua":          0x11806a,
	"darkgreen":         0x1f8b4c,
	"darkblue":          0x206694,
	"darkpurple":        0x71368a,
	"darkvividpink":     0xad1457,
	"darkgold":          0xc27c0e,
	"darkorange":        0xa84300,
	"darkred":           0x992d22,
	"darkgrey":          0x979c9f,
	"darkergrey":        0x7f8c8d,
	"lightgrey":         0xbcc0c0,
	"darknavy":          0x2c3e50,
	"blurple":           0x5865f2,
	"greyple":           0x99aab5,
	"darkbutnotblack":   0x2c2f33,
	"notquiteblack":     0x23272a,
}

// ColorToInt converts a Color into Discord's integer form. It accepts
// "#rrggbb", "rrggbb" (1-6 hex digits), a Discord palette name, or a number in
// 0..0xFFFFFF. Anything else reports false.
func ColorToInt(c domain.Color) (int, bool) {
	if n, ok := c.Number(); ok {
		if n < 0 || n > maxColor {
			return 0, false
		}
		return n, true
	}
	s := strings.TrimSpace(c.String())
	if s == "" {
		return 0, false
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) >= 1 && len(hex) <= 6 {
		if n, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return int(n), true
		}
	}

	name := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
	if n, ok := namedColors[name]; ok {
		return n, true
	}
	return 0, false
}

// AssembledEmbed 组装完成的 embed 及需要随请求上传的附件
type AssembledEmbed struct {
	Embed discord.Embed
	Files []discord.File
}

// PayloadAssembler turns EmbedParameters into a wire embed, staging local images.
// PayloadAssembler 组装 Discord embed
type PayloadAssembler struct {
	links  domain.LinkResolver
	reader domain.BinaryReader
	now    func() time.Time
	logger *zap.Logger
}

// NewPayloadAssembler 创建 PayloadAssembler 实例
func NewPayloadAssembler(links domain.LinkResolver, reader domain.BinaryReader, lg *zap.Logger) *PayloadAssembler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &PayloadAssembler{
		links:  links,
		reader: reader,
		now:    time.Now,
		logger: lg,
	}
}

// Assemble builds the embed for params, falling back to defaults per field.
// Local image and thumbnail links are resolved against the source note and
// staged as attachments; a link that does not resolve is dropped silently.
// Assemble 组装 embed，本地图片作为附件上传
func (a *PayloadAssembler) Assemble(params *domain.EmbedParameters, defaults domain.DefaultValueSet) *AssembledEmbed {
	if params == nil {
		params = &domain.EmbedParameters{}
	}
	out := &AssembledEmbed{}
	embed := &out.Embed

	color := params.Color
	if color.IsZero() {
		color = domain.ColorFromString(defaults.Color)
	}
	if n, ok := ColorToInt(color); ok {
		embed.Color = &n
	}

	embed.Title = firstNonEmpty(params.Title, defaults.Title)
	embed.URL = firstNonEmpty(params.URL, defaults.URL)
	embed.Description = firstNonEmpty(params.Description, defaults.Description)

	switch {
	case params.Author != nil:
		embed.Author = &discord.Author{
			Name:    params.Author.Name,
			URL:     params.Author.URL,
			IconURL: params.Author.IconURL,
		}
	case defaults.Author.IsComplete():
		embed.Author = &discord.Author{
			Name:    defaults.Author.Name,
			URL:     defaults.Author.URL,
			IconURL: defaults.Author.IconURL,
		}
	}

	switch {
	case params.Footer != nil:
		embed.Footer = &discord.Footer{Text: params.Footer.Text, IconURL: params.Footer.IconURL}
	case defaults.Footer.IsComplete():
		embed.Footer = &discord.Footer{Text: defaults.Footer.Text, IconURL: defaults.Footer.IconURL}
	}

	fields := params.Fields
	if fields == nil {
		fields = defaults.Fields
	}
	for _, f := range fields {
		embed.Fields = append(embed.Fields, discord.Field{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	stage := newStager(a, params.SourcePath())

	thumbnail := params.Thumbnail
	if thumbnail.IsZero() {
		thumbnail = domain.ParseImageRef(defaults.Thumbnail)
	}
	if u, ok := stage.media(thumbnail); ok {
		embed.Thumbnail = &discord.Media{URL: u}
	}

	image := params.Image
	if image.IsZero() {
		image = domain.ParseImageRef(defaults.Image)
	}
	if u, ok := stage.media(image); ok {
		embed.Image = &discord.Media{URL: u}
	}

	out.Files = stage.files
	embed.Timestamp = a.now().UTC().Format(timestampLayout)
	return out
}

// stager collects the attachments of one embed, deduplicated by vault path.
type stager struct {
	a      *PayloadAssembler
	source string
	files  []discord.File
	byPath map[string]string
	names  map[string]bool
}

func newStager(a *PayloadAssembler, source string) *stager {
	return &stager{
		a:      a,
		source: source,
		byPath: map[string]string{},
		names:  map[string]bool{},
	}
}

// media returns the URL to put in the embed for ref.
func (s *stager) media(ref domain.ImageRef) (string, bool) {
	if ref.IsZero() {
		return "", false
	}
	if ref.Kind == domain.ImageRemote {
		return ref.Target, true
	}
	if s.a.links == nil || s.a.reader == nil {
		return "", false
	}

	file, ok := s.a.links.ResolveLink(ref.Target, s.source)
	if !ok {
		s.a.logger.Debug("local image link not resolved",
			zap.String(logger.FieldPath, ref.Target),
			zap.String("source", s.source))
		return "", false
	}
	if name, ok := s.byPath[file.Path]; ok {
		return discord.AttachmentURL(name), true
	}

	data, err := s.a.reader.ReadBinary(file)
	if err != nil {
		s.a.logger.Warn("read local image failed",
			zap.String(logger.FieldPath, file.Path),
			zap.Error(err))
		return "", false
	}

	name := s.uniqueName(file.Name)
	s.byPath[file.Path] = name
	s.files = append(s.files, discord.File{Name: name, Data: data})
	return discord.AttachmentURL(name), true
}

// uniqueName keeps attachment:// references unambiguous when two files share a name.
func (s *stager) uniqueName(name string) string {
	if !s.names[name] {
		s.names[name] = true
		return name
	}
	ext := ""
	base := name
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i:]
	}
	for i := 1; ; i++ {
		candidate := base + "-" + strconv.Itoa(i) + ext
		if !s.names[candidate] {
			s.names[candidate] = true
			return candidate
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
