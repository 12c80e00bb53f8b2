package ui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/camera"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/session"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/speech"
)

type chatMode int

const (
	chatComposing chatMode = iota
	chatSearching
)

type sessionUpdatedMsg struct{}

type photoTakenMsg struct {
	err    error
	picked bool
}

type recogTickMsg struct{}

var (
	micUnsupported = i18n.Text{
		EN: "Voice input is not supported on this device.",
		ML: "ഈ ഉപകരണത്തിൽ വോയ്സ് ഇൻപുട്ട് പിന്തുണയ്ക്കുന്നില്ല.",
	}
	micDenied = i18n.Text{
		EN: "Microphone permission denied.",
		ML: "മൈക്രോഫോൺ അനുമതി നിരസിച്ചു.",
	}
	cameraDenied = i18n.Text{
		EN: "Camera permission denied.",
		ML: "ക്യാമറ അനുമതി നിരസിച്ചു.",
	}
	cameraBack = i18n.Text{
		EN: "Using the back camera for the next photo.",
		ML: "അടുത്ത ഫോട്ടോയ്ക്ക് പിൻ ക്യാമറ ഉപയോഗിക്കുന്നു.",
	}
	cameraFront = i18n.Text{
		EN: "Using the front camera for the next photo.",
		ML: "അടുത്ത ഫോട്ടോയ്ക്ക് മുൻ ക്യാമറ ഉപയോഗിക്കുന്നു.",
	}
	cameraMissing = i18n.Text{
		EN: "No camera found. Type an image file path and press ctrl+o to attach it.",
		ML: "ക്യാമറ കണ്ടെത്തിയില്ല. ഒരു ചിത്ര ഫയൽ പാത്ത് ടൈപ്പ് ചെയ്ത് ctrl+o അമർത്തുക.",
	}
)

type chatModel struct {
	session   *session.Controller
	camera    *camera.Controller
	localizer *i18n.Localizer
	keys      KeyMap

	input       textinput.Model
	searchInput textinput.Model
	viewport    viewport.Model
	mode        chatMode
	theme       Theme

	banner string
	width  int
	height int
}

// setTheme is called by the root model when the color scheme changes.
func (m *chatModel) setTheme(theme Theme) {
	m.theme = theme
	m.syncViewport(false)
}

func newChatModel(sess *session.Controller, cam *camera.Controller, localizer *i18n.Localizer, keys KeyMap, theme Theme) chatModel {
	input := textinput.New()
	input.Placeholder = "Ask about crops, weather, schemes..."
	input.CharLimit = session.MaxMessageRunes
	input.Focus()

	search := textinput.New()
	search.Placeholder = "Search messages"

	vp := viewport.New(80, 20)

	m := chatModel{
		session:     sess,
		camera:      cam,
		localizer:   localizer,
		keys:        keys,
		input:       input,
		searchInput: search,
		viewport:    vp,
		theme:       theme,
	}
	m.syncViewport(true)
	return m
}

func (m *chatModel) resize(width, height int) {
	m.width = width
	if height < 5 {
		height = 5
	}
	m.viewport.Width = width
	m.viewport.Height = height - 3
	m.input.Width = width - 4
	m.searchInput.Width = width - 4
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionUpdatedMsg:
		m.syncViewport(true)
		return m, nil

	case photoTakenMsg:
		if msg.err != nil {
			switch {
			case msg.err == camera.ErrPermissionDenied:
				m.banner = m.localizer.T("chat.alert", cameraDenied)
			case msg.err == camera.ErrNoDevice:
				m.banner = m.localizer.T("chat.alert", cameraMissing)
			default:
				m.banner = msg.err.Error()
			}
			return m, nil
		}
		if msg.picked {
			m.input.SetValue("")
		}
		return m, nil

	case recogTickMsg:
		if !m.session.Recognizing() {
			m.input.SetValue(m.session.Input())
			return m, nil
		}
		m.input.SetValue(m.session.Input())
		return m, recogTick()

	case tea.KeyMsg:
		m.banner = ""
		if m.mode == chatSearching {
			return m.updateSearch(msg)
		}
		return m.updateComposer(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m chatModel) updateComposer(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		m.session.SetInput(m.input.Value())
		m.input.SetValue("")
		return m, m.sendCmd()

	case key.Matches(msg, m.keys.Search):
		m.mode = chatSearching
		m.searchInput.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Translate):
		if id, ok := m.lastAssistantID(); ok {
			return m, m.translateCmd(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Read):
		if m.session.ReadingID() != 0 {
			m.session.StopReading()
			m.syncViewport(false)
			return m, nil
		}
		if id, ok := m.lastAssistantID(); ok {
			return m, m.readCmd(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Mic):
		return m.toggleMic()

	case key.Matches(msg, m.keys.Camera):
		return m, m.photoCmd()

	case key.Matches(msg, m.keys.SwitchCam):
		if err := m.camera.Switch(context.Background()); err != nil {
			m.banner = err.Error()
			return m, nil
		}
		side := cameraBack
		if m.camera.Facing() == camera.FacingFront {
			side = cameraFront
		}
		m.banner = m.localizer.T("chat.camera", side)
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.input.SetValue("")
		m.syncViewport(true)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.session.DiscardImage()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) updateSearch(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = chatComposing
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.input.Focus()
		m.session.Search("")
		m.syncViewport(false)
		return m, nil

	case key.Matches(msg, m.keys.NextMatch), key.Matches(msg, m.keys.Send):
		m.session.NextMatch()
		m.syncViewport(false)
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.session.PrevMatch()
		m.syncViewport(false)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.session.Search(m.searchInput.Value())
	m.syncViewport(false)
	return m, cmd
}

func (m chatModel) toggleMic() (chatModel, tea.Cmd) {
	if m.session.Recognizing() {
		m.session.StopRecognition()
		m.input.SetValue(m.session.Input())
		return m, nil
	}

	err := m.session.StartRecognition(context.Background(), bytes.NewReader(nil))
	switch {
	case err == speech.ErrUnsupported:
		m.banner = m.localizer.T("chat.alert", micUnsupported)
		return m, nil
	case err == speech.ErrPermissionDenied:
		m.banner = m.localizer.T("chat.alert", micDenied)
		return m, nil
	case err != nil:
		m.banner = err.Error()
		return m, nil
	}
	return m, recogTick()
}

func recogTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return recogTickMsg{}
	})
}

func (m chatModel) sendCmd() tea.Cmd {
	return func() tea.Msg {
		m.session.SendMessage(context.Background())
		return sessionUpdatedMsg{}
	}
}

func (m chatModel) translateCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		m.session.ToggleTranslation(context.Background(), id)
		return sessionUpdatedMsg{}
	}
}

func (m chatModel) readCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		m.session.ReadMessage(context.Background(), id)
		return sessionUpdatedMsg{}
	}
}

func (m chatModel) photoCmd() tea.Cmd {
	// A file path in the composer acts as the picker fallback when no
	// live camera is available.
	path := strings.TrimSpace(m.input.Value())
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.camera.Open(ctx); err != nil {
			if err == camera.ErrNoDevice && path != "" {
				att, pickErr := camera.PickFile(path)
				if pickErr != nil {
					return photoTakenMsg{err: pickErr}
				}
				m.session.AttachImage(att)
				return photoTakenMsg{picked: true}
			}
			return photoTakenMsg{err: err}
		}
		att, err := m.camera.Shutter(ctx)
		if err != nil {
			return photoTakenMsg{err: err}
		}
		m.session.AttachImage(att)
		return photoTakenMsg{}
	}
}

func (m chatModel) lastAssistantID() (int64, bool) {
	msgs := m.session.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if !msgs[i].IsUser {
			return msgs[i].ID, true
		}
	}
	return 0, false
}

func (m *chatModel) syncViewport(follow bool) {
	m.viewport.SetContent(m.renderMessagesWith(m.theme))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m chatModel) renderMessagesWith(theme Theme) string {
	msgs := m.session.Messages()
	query := m.session.SearchQuery()
	focusID, _ := m.session.CurrentMatch()
	readingID := m.session.ReadingID()
	translatingID := m.session.TranslatingID()

	maxWidth := m.width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}

	var blocks []string
	for _, msg := range msgs {
		content := msg.DisplayContent()
		if query != "" {
			style := theme.Highlight
			if msg.ID == focusID {
				style = theme.FocusHighlight
			}
			content = highlight(content, query, style)
		}

		bubble := theme.AssistantBubble
		switch {
		case msg.IsUser:
			bubble = theme.UserBubble
		case msg.IsError:
			bubble = theme.ErrorBubble
		}

		var meta []string
		meta = append(meta, msg.Timestamp.Format("15:04"))
		if msg.ImageURL != "" {
			meta = append(meta, "[photo]")
		}
		if msg.IsTranslated {
			meta = append(meta, "translated")
		}
		if msg.ID == translatingID {
			meta = append(meta, "translating…")
		}
		if msg.ID == readingID {
			meta = append(meta, "🔊 reading")
		}

		block := bubble.MaxWidth(maxWidth).Render(content) + "\n" +
			theme.Meta.Render(strings.Join(meta, " · "))
		if msg.IsUser {
			block = lipgloss.NewStyle().Width(m.width - 2).Align(lipgloss.Right).Render(block)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n")
}

func (m chatModel) view(theme Theme, localizer *i18n.Localizer, width int) string {
	mm := m
	mm.viewport.SetContent(mm.renderMessagesWith(theme))

	var footer string
	switch m.mode {
	case chatSearching:
		matches := m.session.Matches()
		counter := "no matches"
		if len(matches) > 0 {
			if cur, ok := m.session.CurrentMatch(); ok {
				idx := 0
				for i, id := range matches {
					if id == cur {
						idx = i
						break
					}
				}
				counter = fmt.Sprintf("%d/%d", idx+1, len(matches))
			}
		}
		footer = m.searchInput.View() + "  " + theme.Meta.Render(counter)
	default:
		footer = m.input.View()
	}

	var extras []string
	if att := m.session.PendingImage(); att != nil {
		extras = append(extras, theme.Positive.Render("📎 "+att.Name+" attached (esc to remove)"))
	}
	if m.session.Recognizing() {
		extras = append(extras, theme.Positive.Render("🎤 listening… (C-v to stop)"))
	}
	if m.session.Sending() {
		extras = append(extras, theme.Meta.Render("sending…"))
	}
	if m.banner != "" {
		extras = append(extras, theme.Banner.Render(m.banner))
	}

	parts := []string{mm.viewport.View()}
	parts = append(parts, extras...)
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// highlight wraps every case-insensitive occurrence of query in the style.
// Lowercasing can change a rune's byte length, so matches are found in a
// lowered copy and mapped back to original offsets through a byte index.
func highlight(text, query string, style lipgloss.Style) string {
	if query == "" {
		return text
	}
	lowerQuery := strings.ToLower(query)

	var lowered []byte
	back := make([]int, 0, len(text)+1)
	for i, r := range text {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], unicode.ToLower(r))
		lowered = append(lowered, buf[:n]...)
		for j := 0; j < n; j++ {
			back = append(back, i)
		}
	}
	back = append(back, len(text))
	lowerText := string(lowered)

	var b strings.Builder
	cursor := 0
	prev := 0
	for {
		i := strings.Index(lowerText[cursor:], lowerQuery)
		if i < 0 {
			b.WriteString(text[prev:])
			return b.String()
		}
		start := back[cursor+i]
		end := back[cursor+i+len(lowerQuery)]
		b.WriteString(text[prev:start])
		b.WriteString(style.Render(text[start:end]))
		prev = end
		cursor += i + len(lowerQuery)
	}
}
