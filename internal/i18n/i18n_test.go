package i18n_test

import (
	"testing"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

func TestLocalizerResolution(t *testing.T) {
	loc := i18n.NewLocalizer(i18n.English, nil)

	pair := i18n.Text{EN: "Weather", ML: "കാലാവസ്ഥ"}
	if got := loc.T("weather", pair); got != "Weather" {
		t.Fatalf("expected English text, got %q", got)
	}

	loc.SetLanguage(i18n.Malayalam)
	if got := loc.T("weather", pair); got != "കാലാവസ്ഥ" {
		t.Fatalf("expected Malayalam text, got %q", got)
	}
}

func TestLocalizerFallbacks(t *testing.T) {
	loc := i18n.NewLocalizer(i18n.Malayalam, nil)

	// Missing Malayalam falls back to English.
	if got := loc.T("key", i18n.Text{EN: "only english"}); got != "only english" {
		t.Fatalf("expected English fallback, got %q", got)
	}

	// Fully empty pair falls back to the key itself.
	if got := loc.T("rawKey", i18n.Text{}); got != "rawKey" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

type recordingSaver struct {
	saved []i18n.Language
}

func (r *recordingSaver) SaveLanguage(l i18n.Language) error {
	r.saved = append(r.saved, l)
	return nil
}

func TestTogglePersists(t *testing.T) {
	saver := &recordingSaver{}
	loc := i18n.NewLocalizer(i18n.English, saver)

	if got := loc.Toggle(); got != i18n.Malayalam {
		t.Fatalf("expected toggle to Malayalam, got %s", got)
	}
	if got := loc.Toggle(); got != i18n.English {
		t.Fatalf("expected toggle back to English, got %s", got)
	}

	if len(saver.saved) != 2 || saver.saved[0] != i18n.Malayalam || saver.saved[1] != i18n.English {
		t.Fatalf("unexpected persisted sequence: %v", saver.saved)
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		text string
		want i18n.Language
	}{
		{"Hello farmer", i18n.English},
		{"", i18n.English},
		{"നെല്ല് വില ഉയർന്നു", i18n.Malayalam},
		{"Rice വില mixed script", i18n.Malayalam},
		{"28°C, clear skies!", i18n.English},
	}

	for _, tc := range cases {
		if got := i18n.Detect(tc.text); got != tc.want {
			t.Fatalf("Detect(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}
