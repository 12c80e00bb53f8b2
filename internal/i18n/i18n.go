package i18n

import (
	"sync"
	"unicode"
)

// Language identifies one of the two supported interface languages.
type Language string

const (
	English   Language = "en"
	Malayalam Language = "ml"
)

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == English || l == Malayalam
}

// Other returns the opposite language.
func (l Language) Other() Language {
	if l == Malayalam {
		return English
	}
	return Malayalam
}

// Text is a bilingual string pair.
type Text struct {
	EN string `json:"en"`
	ML string `json:"ml"`
}

// Saver persists the active language between runs.
type Saver interface {
	SaveLanguage(Language) error
}

// Localizer resolves bilingual pairs against the process-wide active
// language. The active language defaults to English on first run.
type Localizer struct {
	mu    sync.RWMutex
	lang  Language
	saver Saver
}

// NewLocalizer returns a localizer starting in the given language. An
// unrecognized value falls back to English.
func NewLocalizer(lang Language, saver Saver) *Localizer {
	if !lang.Valid() {
		lang = English
	}
	return &Localizer{lang: lang, saver: saver}
}

// Language returns the active language.
func (l *Localizer) Language() Language {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// Toggle flips the active language and persists the choice.
func (l *Localizer) Toggle() Language {
	l.mu.Lock()
	l.lang = l.lang.Other()
	lang := l.lang
	saver := l.saver
	l.mu.Unlock()

	if saver != nil {
		_ = saver.SaveLanguage(lang)
	}
	return lang
}

// SetLanguage overrides the active language without persisting, used when
// an external preference change is observed.
func (l *Localizer) SetLanguage(lang Language) {
	if !lang.Valid() {
		return
	}
	l.mu.Lock()
	l.lang = lang
	l.mu.Unlock()
}

// T resolves a bilingual pair: active language first, then English, then
// the raw key.
func (l *Localizer) T(key string, text Text) string {
	lang := l.Language()
	if lang == Malayalam && text.ML != "" {
		return text.ML
	}
	if text.EN != "" {
		return text.EN
	}
	return key
}

// Detect classifies text by script: any rune in the Malayalam Unicode
// block means Malayalam, otherwise English.
func Detect(text string) Language {
	for _, r := range text {
		if unicode.Is(unicode.Malayalam, r) {
			return Malayalam
		}
	}
	return English
}
