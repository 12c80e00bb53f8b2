// Package prefs persists the two durable client preferences, theme and
// language, mirroring the browser client's local-storage keys.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// Theme names a UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Flip returns the opposite theme.
func (t Theme) Flip() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Prefs is the on-disk document.
type Prefs struct {
	Theme    Theme         `toml:"theme"`
	Language i18n.Language `toml:"language"`
}

func defaults() Prefs {
	return Prefs{Theme: ThemeLight, Language: i18n.English}
}

// Store loads and saves preferences from a TOML file. A missing or corrupt
// file degrades to defaults rather than failing startup.
type Store struct {
	mu   sync.Mutex
	path string
	cur  Prefs
}

// DefaultPath returns the preferences file location under the user config
// directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "krishi-sakhi", "prefs.toml"), nil
}

// Open reads the preferences file at path, falling back to defaults when it
// is absent or unreadable.
func Open(path string) *Store {
	s := &Store{path: path, cur: defaults()}

	var loaded Prefs
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			// Corrupt file: keep defaults, the next save overwrites it.
			return s
		}
		return s
	}
	if loaded.Theme.Valid() {
		s.cur.Theme = loaded.Theme
	}
	if loaded.Language.Valid() {
		s.cur.Language = loaded.Language
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Current returns the in-memory preferences.
func (s *Store) Current() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// SaveLanguage persists a new active language. Implements i18n.Saver.
func (s *Store) SaveLanguage(lang i18n.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Language = lang
	return s.writeLocked()
}

// SaveTheme persists a new theme.
func (s *Store) SaveTheme(theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Theme = theme
	return s.writeLocked()
}

// reload re-reads the file, returning the fresh preferences and whether
// they differ from the in-memory copy.
func (s *Store) reload() (Prefs, bool) {
	var loaded Prefs
	if _, err := toml.DecodeFile(s.path, &loaded); err != nil {
		return Prefs{}, false
	}
	if !loaded.Theme.Valid() || !loaded.Language.Valid() {
		return Prefs{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if loaded == s.cur {
		return loaded, false
	}
	s.cur = loaded
	return loaded, true
}

// writeLocked rewrites the file atomically: encode to a sibling temp file,
// then rename over the target.
func (s *Store) writeLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(s.cur); err != nil {
		tmp.Close()
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp prefs file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace prefs file: %w", err)
	}
	return nil
}
