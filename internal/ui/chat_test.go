package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/notification"
)

func TestHighlightPreservesText(t *testing.T) {
	// An attribute-free style renders as plain text, so the output must
	// equal the input regardless of how many matches were wrapped.
	plain := lipgloss.NewStyle()

	cases := []struct {
		name  string
		text  string
		query string
	}{
		{"no match", "rice needs water", "wheat"},
		{"single match", "rice needs water", "needs"},
		{"case insensitive", "Rice Needs Water", "rice"},
		{"repeated match", "rain rain go away", "rain"},
		{"match at end", "ask about paddy", "paddy"},
		{"malayalam", "നെല്ല് ജൂണിൽ നടുക", "ജൂണിൽ"},
		{"empty query", "anything", ""},
		// U+023A lowercases to U+2C65, growing from 2 to 3 bytes; offsets
		// from the lowered copy must not be applied to the original.
		{"match after growing rune", "Ⱥa", "a"},
		{"growing rune is the match", "xȺy", "Ⱥ"},
		{"growing rune mid text", "pre Ⱥ post", "post"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.text, highlight(tc.text, tc.query, plain))
		})
	}
}

func TestKindIcon(t *testing.T) {
	seen := map[string]bool{}
	for _, kind := range []notification.Kind{notification.Success, notification.Warning, notification.Error, notification.Info} {
		icon := kindIcon(kind)
		assert.NotEmpty(t, icon)
		seen[icon] = true
	}
	assert.Len(t, seen, 4, "each kind gets a distinct icon")
}
