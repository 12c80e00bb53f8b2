package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/notification"
)

type notificationsModel struct {
	store  *notification.Store
	cursor int
}

func newNotificationsModel(store *notification.Store, _ *i18n.Localizer) notificationsModel {
	return notificationsModel{store: store}
}

func (m notificationsModel) update(msg tea.Msg, keys KeyMap) (notificationsModel, tea.Cmd) {
	items := m.store.List()

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Select):
			if m.cursor < len(items) {
				m.store.MarkRead(items[m.cursor].ID)
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(items) {
				m.store.Delete(items[m.cursor].ID)
				if m.cursor > 0 {
					m.cursor--
				}
			}
		case key.Matches(msg, keys.MarkAll):
			m.store.MarkAllRead()
		case key.Matches(msg, keys.Clear):
			m.store.ClearAll()
			m.cursor = 0
		}
	}
	return m, nil
}

var notificationsTitle = i18n.Text{EN: "Notifications", ML: "അറിയിപ്പുകൾ"}

func kindIcon(kind notification.Kind) string {
	switch kind {
	case notification.Success:
		return "✔"
	case notification.Warning:
		return "⚠"
	case notification.Error:
		return "✖"
	default:
		return "ℹ"
	}
}

func (m notificationsModel) view(theme Theme, localizer *i18n.Localizer) string {
	items := m.store.List()

	var b strings.Builder
	title := localizer.T("notifications.title", notificationsTitle)
	if unread := m.store.UnreadCount(); unread > 0 {
		title = fmt.Sprintf("%s (%d unread)", title, unread)
	}
	b.WriteString(theme.Title.Render(title) + "\n\n")

	if len(items) == 0 {
		return b.String() + theme.Meta.Render("All caught up.")
	}

	for i, n := range items {
		marker := "  "
		if i == m.cursor {
			marker = theme.Positive.Render("> ")
		}
		style := theme.Read
		if !n.IsRead {
			style = theme.Unread
		}
		icon := kindIcon(n.Kind)
		if n.Kind == notification.Warning || n.Kind == notification.Error {
			icon = theme.Negative.Render(icon)
		} else {
			icon = theme.Positive.Render(icon)
		}

		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", marker, icon,
			style.Render(localizer.T("notification.title", n.Title)),
			theme.Meta.Render(n.Timestamp.Format("Jan 2 15:04"))))
		b.WriteString("    " + theme.Value.Render(localizer.T("notification.body", n.Body)) + "\n")
	}

	b.WriteString("\n" + theme.Help.Render("j/k: move · enter: mark read · d: delete · a: all read · C-x: clear"))
	return b.String()
}
