package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

type activitiesMsg struct {
	activities []api.Activity
	err        error
}

type activityDeletedMsg struct{ err error }

type activitiesModel struct {
	client *api.Client

	activities []api.Activity
	cursor     int
	err        error
}

func newActivitiesModel(client *api.Client, _ *i18n.Localizer) activitiesModel {
	return activitiesModel{client: client}
}

func (m activitiesModel) fetch() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		list, err := client.ListActivities(context.Background())
		return activitiesMsg{activities: list, err: err}
	}
}

func (m activitiesModel) update(msg tea.Msg, keys KeyMap) (activitiesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.activities = msg.activities
		if m.cursor >= len(m.activities) {
			m.cursor = len(m.activities) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case activityDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.fetch()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.activities)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.activities) {
				id := m.activities[m.cursor].ID
				client := m.client
				return m, func() tea.Msg {
					return activityDeletedMsg{err: client.DeleteActivity(context.Background(), id)}
				}
			}
		case key.Matches(msg, keys.Refresh):
			return m, m.fetch()
		}
	}
	return m, nil
}

var activitiesTitle = i18n.Text{EN: "Farm Activities", ML: "കൃഷി പ്രവർത്തനങ്ങൾ"}

func (m activitiesModel) view(theme Theme, localizer *i18n.Localizer) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(localizer.T("activities.title", activitiesTitle)) + "\n\n")

	if m.err != nil {
		b.WriteString(theme.Banner.Render(m.err.Error()) + "\n")
	}
	if len(m.activities) == 0 {
		return b.String() + theme.Meta.Render("No activities logged yet.")
	}

	lang := localizer.Language()
	for i, a := range m.activities {
		marker := "  "
		if i == m.cursor {
			marker = theme.Positive.Render("> ")
		}
		name := a.Name.EN
		desc := a.Description.EN
		if lang == i18n.Malayalam {
			if a.Name.ML != "" {
				name = a.Name.ML
			}
			if a.Description.ML != "" {
				desc = a.Description.ML
			}
		}
		status := theme.Positive.Render(a.Status)
		if a.Status == "pending" {
			status = theme.Label.Render(a.Status)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n", marker, theme.Subtitle.Render(name), theme.Meta.Render(a.Date), status))
		if desc != "" {
			b.WriteString("    " + theme.Value.Render(desc) + "\n")
		}
		if a.Cost > 0 || a.LaborHours > 0 {
			b.WriteString("    " + theme.Label.Render(fmt.Sprintf("₹%.0f · %.1f labor hours · %s", a.Cost, a.LaborHours, a.FarmName)) + "\n")
		}
	}
	b.WriteString("\n" + theme.Help.Render("j/k: move · d: delete · r: refresh"))
	return b.String()
}
