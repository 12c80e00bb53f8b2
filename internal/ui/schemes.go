package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

type schemesMsg struct {
	schemes []api.Scheme
	err     error
}

type schemesModel struct {
	client    *api.Client
	localizer *i18n.Localizer

	schemes   []api.Scheme
	cursor    int
	expanded  bool
	searching bool
	search    textinput.Model
	err       error
}

func newSchemesModel(client *api.Client, localizer *i18n.Localizer) schemesModel {
	search := textinput.New()
	search.Placeholder = "Search schemes"
	return schemesModel{client: client, localizer: localizer, search: search}
}

func (m schemesModel) fetch() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		list, err := client.ListSchemes(context.Background())
		return schemesMsg{schemes: list, err: err}
	}
}

func (m schemesModel) searchCmd(query string) tea.Cmd {
	client := m.client
	lang := m.localizer.Language()
	return func() tea.Msg {
		list, err := client.SearchSchemes(context.Background(), query, "", lang)
		return schemesMsg{schemes: list, err: err}
	}
}

func (m schemesModel) update(msg tea.Msg, keys KeyMap) (schemesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case schemesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.schemes = msg.schemes
		if m.cursor >= len(m.schemes) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch {
			case key.Matches(msg, keys.Escape):
				m.searching = false
				m.search.SetValue("")
				m.search.Blur()
				return m, m.fetch()
			case key.Matches(msg, keys.Select):
				m.searching = false
				m.search.Blur()
				return m, m.searchCmd(m.search.Value())
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.expanded = false
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.schemes)-1 {
				m.cursor++
				m.expanded = false
			}
		case key.Matches(msg, keys.Select):
			m.expanded = !m.expanded
		case key.Matches(msg, keys.Search):
			m.searching = true
			m.search.Focus()
		case key.Matches(msg, keys.Refresh):
			return m, m.fetch()
		}
	}
	return m, nil
}

var schemesTitle = i18n.Text{EN: "Government Schemes", ML: "സർക്കാർ പദ്ധതികൾ"}

func (m schemesModel) view(theme Theme, localizer *i18n.Localizer, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(localizer.T("schemes.title", schemesTitle)) + "\n\n")

	if m.searching {
		b.WriteString(m.search.View() + "\n\n")
	}
	if m.err != nil {
		b.WriteString(theme.Banner.Render(m.err.Error()) + "\n")
	}
	if len(m.schemes) == 0 {
		return b.String() + theme.Meta.Render("No schemes found.")
	}

	for i, s := range m.schemes {
		marker := "  "
		if i == m.cursor {
			marker = theme.Positive.Render("> ")
		}
		b.WriteString(marker + theme.Subtitle.Render(localizer.T("scheme.name", s.Name)))
		if tag := localizer.T("scheme.tag", s.Tag); tag != "" {
			b.WriteString("  " + theme.Label.Render("["+tag+"]"))
		}
		if s.Recommendation != nil {
			b.WriteString("  " + theme.Positive.Render("★ "+s.Recommendation.Priority))
		}
		b.WriteString("\n")

		if i == m.cursor && m.expanded {
			b.WriteString("    " + theme.Value.Render(localizer.T("scheme.description", s.Description)) + "\n")
			b.WriteString("    " + theme.Label.Render("Eligibility: ") + theme.Value.Render(localizer.T("scheme.eligibility", s.Eligibility)) + "\n")
			b.WriteString("    " + theme.Label.Render("How to apply: ") + theme.Value.Render(localizer.T("scheme.apply", s.ApplicationProcess)) + "\n")
			if s.OfficialLink != "" {
				b.WriteString("    " + theme.Meta.Render(s.OfficialLink) + "\n")
			}
			if s.Recommendation != nil {
				b.WriteString("    " + theme.Positive.Render(s.Recommendation.Reason) + "\n")
			}
		}
	}
	b.WriteString("\n" + theme.Help.Render("j/k: move · enter: details · C-f: search · r: refresh"))
	return b.String()
}
