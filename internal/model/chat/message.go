package chat

import (
	"time"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// Message is a single turn of the conversation as rendered on screen.
//
// TranslatedContent is only meaningful while IsTranslated is set; it stays
// cached after toggling back so re-translating needs no network call.
// User-authored messages never carry translation fields.
type Message struct {
	ID                int64         `json:"id"`
	Content           string        `json:"content"`
	IsUser            bool          `json:"isUser"`
	Timestamp         time.Time     `json:"timestamp"`
	ImageURL          string        `json:"imageUrl,omitempty"`
	TranslatedContent string        `json:"translatedContent,omitempty"`
	OriginalLanguage  i18n.Language `json:"originalLanguage,omitempty"`
	IsTranslated      bool          `json:"isTranslated"`
	IsError           bool          `json:"isError,omitempty"`
}

// DisplayContent returns the text currently shown for the message,
// honoring the translation toggle.
func (m Message) DisplayContent() string {
	if m.IsTranslated && m.TranslatedContent != "" {
		return m.TranslatedContent
	}
	return m.Content
}

// DisplayLanguage returns the language of the text currently shown.
func (m Message) DisplayLanguage() i18n.Language {
	if m.IsTranslated {
		return m.OriginalLanguage.Other()
	}
	if m.OriginalLanguage.Valid() {
		return m.OriginalLanguage
	}
	return i18n.Detect(m.Content)
}

// Attachment is a staged image waiting to be sent with the next message.
type Attachment struct {
	Name    string
	MIME    string
	Data    []byte
	Preview string // data URI for inline preview
}
