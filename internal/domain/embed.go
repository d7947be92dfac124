package domain

import "time"

const (
	ColorRed     = 0xFF0000
	ColorDarkRed = 0x8B0000
	ColorGreen   = 0x00FF00
	ColorBlue    = 0x3498DB
	ColorTeal    = 0x00AE86
	ColorMint    = 0x4ECDC4
	ColorPurple  = 0x3F1582
)

// Embed is a platform-neutral structured message.
type Embed struct {
	Title        string       `json:"title,omitempty"`
	Description  string       `json:"description,omitempty"`
	Color        int          `json:"color,omitempty"`
	Fields       []EmbedField `json:"fields,omitempty"`
	Footer       string       `json:"footer,omitempty"`
	FooterIcon   string       `json:"footer_icon,omitempty"`
	ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	Timestamp    time.Time    `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

func (e *Embed) AddField(name, value string, inline bool) *Embed {
	e.Fields = append(e.Fields, EmbedField{Name: name, Value: value, Inline: inline})
	return e
}
