package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

type articleMsg struct {
	article api.KnowledgeArticle
	err     error
}

type marketBoardMsg struct {
	prices []api.MarketPrice
	err    error
}

type weatherAnalysisMsg struct {
	analysis api.WeatherAnalysis
	err      error
}

type knowledgeModel struct {
	client    *api.Client
	localizer *i18n.Localizer

	prompt   textinput.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	prices   []api.MarketPrice
	analysis *api.WeatherAnalysis
	loading  bool
	err      error
}

func newKnowledgeModel(client *api.Client, localizer *i18n.Localizer) knowledgeModel {
	prompt := textinput.New()
	prompt.Placeholder = "Ask the knowledge base, e.g. \"paddy crop calendar\""

	// WithAutoStyle follows the terminal background; markdown falls back
	// to plain text when the renderer cannot initialize.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		renderer = nil
	}

	return knowledgeModel{
		client:    client,
		localizer: localizer,
		prompt:    prompt,
		viewport:  viewport.New(80, 18),
		renderer:  renderer,
	}
}

func (m *knowledgeModel) resize(width, height int) {
	m.viewport.Width = width
	if height > 6 {
		m.viewport.Height = height - 4
	}
	m.prompt.Width = width - 4
}

func (m knowledgeModel) askCmd(prompt string) tea.Cmd {
	client := m.client
	lang := m.localizer.Language()
	return func() tea.Msg {
		article, err := client.KnowledgeContent(context.Background(), prompt, 0, lang)
		return articleMsg{article: article, err: err}
	}
}

func (m knowledgeModel) boardCmd() tea.Cmd {
	client := m.client
	return tea.Batch(
		func() tea.Msg {
			prices, err := client.KnowledgeMarketPrices(context.Background())
			return marketBoardMsg{prices: prices, err: err}
		},
		func() tea.Msg {
			analysis, err := client.KnowledgeWeatherAnalysis(context.Background())
			return weatherAnalysisMsg{analysis: analysis, err: err}
		},
	)
}

func (m knowledgeModel) update(msg tea.Msg, keys KeyMap) (knowledgeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case articleMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.viewport.SetContent(m.renderMarkdown(msg.article.Content))
		m.viewport.GotoTop()
		return m, nil

	case marketBoardMsg:
		if msg.err == nil {
			m.prices = msg.prices
		}
		return m, nil

	case weatherAnalysisMsg:
		if msg.err == nil {
			m.analysis = &msg.analysis
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompt.Focused() {
			switch {
			case key.Matches(msg, keys.Select):
				query := strings.TrimSpace(m.prompt.Value())
				if query == "" {
					return m, nil
				}
				m.prompt.Blur()
				m.loading = true
				return m, m.askCmd(query)
			case key.Matches(msg, keys.Escape):
				m.prompt.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Search):
			m.prompt.Focus()
			return m, nil
		case key.Matches(msg, keys.Refresh):
			return m, m.boardCmd()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m knowledgeModel) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

var knowledgeTitle = i18n.Text{EN: "Knowledge Base", ML: "അറിവ് ശേഖരം"}

func (m knowledgeModel) view(theme Theme, localizer *i18n.Localizer) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(localizer.T("knowledge.title", knowledgeTitle)) + "\n")
	b.WriteString(m.prompt.View() + "\n")

	if m.err != nil {
		b.WriteString(theme.Banner.Render(m.err.Error()) + "\n")
	}
	if m.loading {
		b.WriteString(theme.Meta.Render("generating…") + "\n")
	}
	b.WriteString(m.viewport.View() + "\n")

	if m.analysis != nil {
		b.WriteString(theme.Subtitle.Render("Weather analysis") + " " +
			theme.Label.Render(fmt.Sprintf("%d°C %s", m.analysis.Temperature, m.analysis.Description)) + "\n")
		b.WriteString(theme.Value.Render(m.analysis.Analysis) + "\n")
	}
	if len(m.prices) > 0 {
		b.WriteString(theme.Subtitle.Render("Market board") + "\n")
		for _, p := range m.prices {
			b.WriteString(fmt.Sprintf("  %-14s ₹%.0f/%s\n", p.Crop, p.Price, p.Unit))
		}
	}
	b.WriteString(theme.Help.Render("C-f: ask · r: market board · esc: leave prompt"))
	return b.String()
}
