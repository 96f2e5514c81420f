// Package discord sends webhook messages to Discord.
package discord

// WebhookPayload is the JSON document posted to a webhook, or the payload_json
// part of a multipart request.
type WebhookPayload struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Content   string  `json:"content,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

// Embed is one rich embed.
type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Color       *int    `json:"color,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
	Image       *Media  `json:"image,omitempty"`
	Thumbnail   *Media  `json:"thumbnail,omitempty"`
	Author      *Author `json:"author,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Footer embed footer.
type Footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// Media is an image or thumbnail reference: an http(s) URL or attachment://<name>.
type Media struct {
	URL string `json:"url"`
}

// Author embed author.
type Author struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// Field embed field.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// File is a binary staged for upload in the same request as the payload.
type File struct {
	Name string
	Data []byte
}

// Identity is the bot username and avatar shown on posted messages.
type Identity struct {
	Username  string
	AvatarURL string
}

// AttachmentURL returns the reference an embed uses to point at an uploaded file.
func AttachmentURL(name string) string {
	return "attachment://" + name
}
