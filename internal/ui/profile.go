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

type profileMsg struct {
	farmers []api.Farmer
	farms   []api.Farm
	err     error
}

type profileModel struct {
	client *api.Client

	farmer *api.Farmer
	farms  []api.Farm
	err    error
}

func newProfileModel(client *api.Client) profileModel {
	return profileModel{client: client}
}

func (m profileModel) fetch() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		farmers, err := client.ListFarmers(context.Background())
		if err != nil {
			return profileMsg{err: err}
		}
		farms, err := client.ListFarms(context.Background())
		return profileMsg{farmers: farmers, farms: farms, err: err}
	}
}

func (m profileModel) update(msg tea.Msg, keys KeyMap) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if len(msg.farmers) > 0 {
			farmer := msg.farmers[0]
			m.farmer = &farmer
		}
		m.farms = msg.farms
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Refresh) {
			return m, m.fetch()
		}
	}
	return m, nil
}

var profileTitle = i18n.Text{EN: "My Profile", ML: "എന്റെ പ്രൊഫൈൽ"}

func (m profileModel) view(theme Theme, localizer *i18n.Localizer) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(localizer.T("profile.title", profileTitle)) + "\n\n")

	if m.err != nil {
		b.WriteString(theme.Banner.Render(m.err.Error()) + "\n")
		return b.String()
	}
	if m.farmer == nil {
		return b.String() + theme.Meta.Render("loading…")
	}

	b.WriteString(theme.Subtitle.Render(m.farmer.Name) + "\n")
	b.WriteString(theme.Label.Render("Phone: ") + theme.Value.Render(m.farmer.PhoneNumber) + "\n")
	if m.farmer.Email != "" {
		b.WriteString(theme.Label.Render("Email: ") + theme.Value.Render(m.farmer.Email) + "\n")
	}
	if m.farmer.Address != "" {
		b.WriteString(theme.Label.Render("Address: ") + theme.Value.Render(m.farmer.Address) + "\n")
	}

	if len(m.farms) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("Farms") + "\n")
		for _, f := range m.farms {
			name := f.Name
			if name == "" {
				name = fmt.Sprintf("Farm #%d", f.ID)
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", theme.Value.Render(name),
				theme.Label.Render(fmt.Sprintf("%.1f acres · %s", f.Size, f.Location))))
			if f.SoilType != "" || f.IrrigationType != "" {
				b.WriteString("    " + theme.Meta.Render(strings.TrimSpace(f.SoilType+" "+f.IrrigationType)) + "\n")
			}
		}
	}
	b.WriteString("\n" + theme.Help.Render("r: refresh"))
	return b.String()
}
