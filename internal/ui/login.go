package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// loginModel is a non-functional mock: any phone number is accepted and
// nothing is sent anywhere. It exists so the flow matches the product.
type loginModel struct {
	phone textinput.Model
	done  bool
}

type loginDoneMsg struct{}

func newLoginModel() loginModel {
	phone := textinput.New()
	phone.Placeholder = "Phone number"
	phone.CharLimit = 15
	phone.Focus()
	return loginModel{phone: phone}
}

func (m loginModel) update(msg tea.Msg, keys KeyMap) (loginModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Select) && strings.TrimSpace(m.phone.Value()) != "" {
			m.done = true
			return m, func() tea.Msg { return loginDoneMsg{} }
		}
	}
	var cmd tea.Cmd
	m.phone, cmd = m.phone.Update(msg)
	return m, cmd
}

var (
	loginTitle  = i18n.Text{EN: "Welcome to Krishi Sakhi", ML: "കൃഷി സഖിയിലേക്ക് സ്വാഗതം"}
	loginPrompt = i18n.Text{EN: "Sign in with your phone number", ML: "ഫോൺ നമ്പർ ഉപയോഗിച്ച് സൈൻ ഇൻ ചെയ്യുക"}
)

func (m loginModel) view(theme Theme, localizer *i18n.Localizer) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(localizer.T("login.title", loginTitle)),
		"",
		theme.Label.Render(localizer.T("login.prompt", loginPrompt)),
		m.phone.View(),
		"",
		theme.Help.Render("enter: continue"),
	)
}
