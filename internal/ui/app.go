// Package ui is the terminal front end: one page per product surface,
// routed by a top-level model, all rendered through a shared theme.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/notification"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/prefs"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/camera"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/session"
)

// Page identifies one of the product surfaces.
type Page int

const (
	PageHome Page = iota
	PageChat
	PageActivities
	PageSchemes
	PageKnowledge
	PageProfile
	PageNotifications
	pageCount
)

var pageTitles = map[Page]i18n.Text{
	PageHome:          {EN: "Home", ML: "ഹോം"},
	PageChat:          {EN: "Chat", ML: "ചാറ്റ്"},
	PageActivities:    {EN: "Activities", ML: "പ്രവർത്തനങ്ങൾ"},
	PageSchemes:       {EN: "Schemes", ML: "പദ്ധതികൾ"},
	PageKnowledge:     {EN: "Knowledge", ML: "അറിവ്"},
	PageProfile:       {EN: "Profile", ML: "പ്രൊഫൈൽ"},
	PageNotifications: {EN: "Alerts", ML: "അറിയിപ്പുകൾ"},
}

// Deps carries everything the UI needs, injected by the entrypoint.
type Deps struct {
	API           *api.Client
	Localizer     *i18n.Localizer
	Prefs         *prefs.Store
	Session       *session.Controller
	Camera        *camera.Controller
	Notifications *notification.Store
	Location      string
}

// PrefsChangedMsg is sent when the preferences file changed on disk.
type PrefsChangedMsg struct {
	Prefs prefs.Prefs
}

// App is the root bubbletea model.
type App struct {
	deps  Deps
	theme Theme
	keys  KeyMap
	page  Page

	width  int
	height int

	loggedIn bool
	login    loginModel

	home          homeModel
	chat          chatModel
	activities    activitiesModel
	schemes       schemesModel
	knowledge     knowledgeModel
	profile       profileModel
	notifications notificationsModel
}

// NewApp assembles the root model.
func NewApp(deps Deps) App {
	theme := NewTheme(deps.Prefs.Current().Theme)
	keys := DefaultKeyMap()
	return App{
		deps:          deps,
		theme:         theme,
		keys:          keys,
		page:          PageHome,
		login:         newLoginModel(),
		home:          newHomeModel(deps.API, deps.Location),
		chat:          newChatModel(deps.Session, deps.Camera, deps.Localizer, keys, theme),
		activities:    newActivitiesModel(deps.API, deps.Localizer),
		schemes:       newSchemesModel(deps.API, deps.Localizer),
		knowledge:     newKnowledgeModel(deps.API, deps.Localizer),
		profile:       newProfileModel(deps.API),
		notifications: newNotificationsModel(deps.Notifications, deps.Localizer),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.home.fetch(), a.activities.fetch(), a.schemes.fetch(), a.profile.fetch())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.chat.resize(msg.Width, msg.Height-4)
		a.knowledge.resize(msg.Width, msg.Height-4)
		return a, nil

	case loginDoneMsg:
		a.loggedIn = true
		return a, nil

	case PrefsChangedMsg:
		a.theme = NewTheme(msg.Prefs.Theme)
		a.chat.setTheme(a.theme)
		a.deps.Localizer.SetLanguage(msg.Prefs.Language)
		return a, nil

	case tea.KeyMsg:
		// Global bindings are all control keys, safe to intercept while
		// the composer has focus.
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.deps.Session.Clear()
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextPage):
			a.page = (a.page + 1) % pageCount
			return a, a.enterPage()
		case key.Matches(msg, a.keys.PrevPage):
			a.page = (a.page - 1 + pageCount) % pageCount
			return a, a.enterPage()
		case key.Matches(msg, a.keys.Language):
			a.deps.Localizer.Toggle()
			return a, nil
		case key.Matches(msg, a.keys.ThemeKey):
			next := a.theme.Name.Flip()
			if err := a.deps.Prefs.SaveTheme(next); err == nil {
				a.theme = NewTheme(next)
				a.chat.setTheme(a.theme)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	if !a.loggedIn {
		a.login, cmd = a.login.update(msg, a.keys)
		return a, cmd
	}
	switch a.page {
	case PageHome:
		a.home, cmd = a.home.update(msg, a.keys)
	case PageChat:
		a.chat, cmd = a.chat.update(msg)
	case PageActivities:
		a.activities, cmd = a.activities.update(msg, a.keys)
	case PageSchemes:
		a.schemes, cmd = a.schemes.update(msg, a.keys)
	case PageKnowledge:
		a.knowledge, cmd = a.knowledge.update(msg, a.keys)
	case PageProfile:
		a.profile, cmd = a.profile.update(msg, a.keys)
	case PageNotifications:
		a.notifications, cmd = a.notifications.update(msg, a.keys)
	}
	return a, cmd
}

func (a *App) enterPage() tea.Cmd {
	switch a.page {
	case PageHome:
		return a.home.fetch()
	case PageActivities:
		return a.activities.fetch()
	case PageSchemes:
		return a.schemes.fetch()
	case PageProfile:
		return a.profile.fetch()
	default:
		return nil
	}
}

func (a App) View() string {
	if !a.loggedIn {
		return a.theme.App.Render(a.login.view(a.theme, a.deps.Localizer))
	}

	var body string
	switch a.page {
	case PageHome:
		body = a.home.view(a.theme, a.deps.Localizer, a.width)
	case PageChat:
		body = a.chat.view(a.theme, a.deps.Localizer, a.width)
	case PageActivities:
		body = a.activities.view(a.theme, a.deps.Localizer)
	case PageSchemes:
		body = a.schemes.view(a.theme, a.deps.Localizer, a.width)
	case PageKnowledge:
		body = a.knowledge.view(a.theme, a.deps.Localizer)
	case PageProfile:
		body = a.profile.view(a.theme, a.deps.Localizer)
	case PageNotifications:
		body = a.notifications.view(a.theme, a.deps.Localizer)
	}

	return a.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.tabBar(),
		body,
		a.statusBar(),
	))
}

func (a App) tabBar() string {
	var tabs []string
	for p := PageHome; p < pageCount; p++ {
		title := a.deps.Localizer.T("page", pageTitles[p])
		if p == PageNotifications {
			if unread := a.deps.Notifications.UnreadCount(); unread > 0 {
				title = fmt.Sprintf("%s (%d)", title, unread)
			}
		}
		if p == a.page {
			tabs = append(tabs, a.theme.TabActed.Render(title))
		} else {
			tabs = append(tabs, a.theme.Tab.Render(title))
		}
	}
	return strings.Join(tabs, "")
}

func (a App) statusBar() string {
	lang := "EN"
	if a.deps.Localizer.Language() == i18n.Malayalam {
		lang = "ML"
	}
	help := "tab: pages • C-l: " + lang + " • C-t: theme • C-q: quit"
	return a.theme.Help.Render(help)
}
