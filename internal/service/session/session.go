// Package session owns the conversational state of the chat assistant:
// message history, the staged image attachment, speech capture and
// playback, per-message translation, and in-session search. All mutation
// goes through the Controller so the invariants hold no matter which UI
// event fires.
package session

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/chat"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/speech"
)

// MaxMessageRunes caps one outgoing message.
const MaxMessageRunes = 500

// Gateway is the slice of the API client the controller needs.
type Gateway interface {
	Chat(ctx context.Context, message string) (string, error)
	ChatImage(ctx context.Context, image chat.Attachment, message string) (string, error)
	Translate(ctx context.Context, text string, from, to i18n.Language) (string, error)
	Synthesize(ctx context.Context, text string, language i18n.Language) ([]byte, string, error)
}

var _ Gateway = (*api.Client)(nil)

var greeting = i18n.Text{
	EN: "Hello! I'm your farming assistant. How can I help you today?",
	ML: "നമസ്കാരം! ഞാൻ നിങ്ങളുടെ കൃഷി സഹായിയാണ്. ഇന്ന് എങ്ങനെ സഹായിക്കാം?",
}

var sendFailure = i18n.Text{
	EN: "Sorry, I couldn't process your message. Please try again.",
	ML: "ക്ഷമിക്കണം, നിങ്ങളുടെ സന്ദേശം പ്രോസസ്സ് ചെയ്യാൻ കഴിഞ്ഞില്ല. വീണ്ടും ശ്രമിക്കുക.",
}

// Controller is the single owner of one chat session.
type Controller struct {
	gateway    Gateway
	localizer  *i18n.Localizer
	recognizer speech.Recognizer
	player     speech.Player
	now        func() time.Time

	mu       sync.Mutex
	messages []chat.Message
	lastID   int64

	input        string
	pendingImage *chat.Attachment

	sending       bool
	translatingID int64

	readingID    int64
	readingToken string
	playback     speech.Handle

	recognizing bool
	recGen      int
	recBase     string
	recFinal    string
	recInterim  string
	recCancel   context.CancelFunc

	searchQuery string
	matches     []int64
	matchIndex  int
}

// New returns a controller seeded with the greeting message.
func New(gateway Gateway, localizer *i18n.Localizer, recognizer speech.Recognizer, player speech.Player) *Controller {
	c := &Controller{
		gateway:    gateway,
		localizer:  localizer,
		recognizer: recognizer,
		player:     player,
		now:        time.Now,
		matchIndex: -1,
	}
	c.messages = []chat.Message{c.greetingMessage()}
	return c
}

func (c *Controller) greetingMessage() chat.Message {
	return chat.Message{
		ID:        c.nextID(),
		Content:   c.localizer.T("chat.greeting", greeting),
		Timestamp: c.now(),
	}
}

// nextID derives a message id from the clock, bumped when two events land
// in the same millisecond. Callers hold c.mu (or the controller is not yet
// shared).
func (c *Controller) nextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// Messages returns a snapshot of the history.
func (c *Controller) Messages() []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]chat.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Input returns the composer text. While a recognition session is live it
// is the accumulated final transcript plus the current interim one.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recognizing {
		return c.recBase + c.recFinal + c.recInterim
	}
	return c.input
}

// SetInput replaces the composer text, e.g. when the user types.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Sending reports whether a send is in flight.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// TranslatingID returns the id of the message being translated, 0 if none.
func (c *Controller) TranslatingID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translatingID
}

// ReadingID returns the id of the message being read aloud, 0 if none.
func (c *Controller) ReadingID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readingID
}

// AttachImage stages an image for the next send, replacing any previous
// staged attachment.
func (c *Controller) AttachImage(att chat.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingImage = &att
}

// PendingImage returns the staged attachment, nil if none.
func (c *Controller) PendingImage() *chat.Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingImage
}

// DiscardImage drops the staged attachment.
func (c *Controller) DiscardImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingImage = nil
}

// SendMessage submits the composer text and any staged image. The user
// message is appended optimistically before the network call; a failed
// call appends a bilingual error bubble instead of the assistant reply.
// Send is single-flight: a second call while one is outstanding is a
// no-op.
func (c *Controller) SendMessage(ctx context.Context) error {
	c.mu.Lock()
	text := strings.TrimSpace(c.input)
	if runes := []rune(text); len(runes) > MaxMessageRunes {
		text = string(runes[:MaxMessageRunes])
	}
	image := c.pendingImage

	if (text == "" && image == nil) || c.sending {
		c.mu.Unlock()
		return nil
	}

	content := text
	if content == "" {
		content = "Image uploaded"
	}
	userMsg := chat.Message{
		ID:        c.nextID(),
		Content:   content,
		IsUser:    true,
		Timestamp: c.now(),
	}
	if image != nil {
		userMsg.ImageURL = image.Preview
	}
	c.messages = append(c.messages, userMsg)
	c.input = ""
	c.pendingImage = nil
	c.sending = true
	c.refreshSearchLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	var reply string
	var err error
	if image != nil {
		reply, err = c.gateway.ChatImage(ctx, *image, text)
	} else {
		reply, err = c.gateway.Chat(ctx, text)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Printf("[session] send failed: %v", err)
		c.messages = append(c.messages, chat.Message{
			ID:        c.nextID(),
			Content:   c.localizer.T("chat.sendError", sendFailure),
			Timestamp: c.now(),
			IsError:   true,
		})
		c.refreshSearchLocked()
		return err
	}

	c.messages = append(c.messages, chat.Message{
		ID:               c.nextID(),
		Content:          reply,
		Timestamp:        c.now(),
		OriginalLanguage: i18n.Detect(reply),
	})
	c.refreshSearchLocked()
	return nil
}

// ToggleTranslation flips a message between original and translated view.
// A cached translation is reused without a network call; only one message
// may be fetching a translation at a time. Translation failures are
// silent: the flag clears and the content stays as it was.
func (c *Controller) ToggleTranslation(ctx context.Context, id int64) {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 || c.messages[idx].IsUser {
		c.mu.Unlock()
		return
	}

	msg := &c.messages[idx]
	if msg.IsTranslated {
		msg.IsTranslated = false
		c.refreshSearchLocked()
		c.mu.Unlock()
		return
	}
	if msg.TranslatedContent != "" {
		msg.IsTranslated = true
		c.refreshSearchLocked()
		c.mu.Unlock()
		return
	}
	if c.translatingID != 0 {
		c.mu.Unlock()
		return
	}

	c.translatingID = id
	text := msg.Content
	from := msg.OriginalLanguage
	if !from.Valid() {
		from = i18n.Detect(text)
	}
	c.mu.Unlock()

	translated, err := c.gateway.Translate(ctx, text, from, from.Other())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.translatingID = 0
	if err != nil {
		log.Printf("[session] translation failed for message %d: %v", id, err)
		return
	}
	if idx := c.indexLocked(id); idx >= 0 {
		c.messages[idx].TranslatedContent = translated
		c.messages[idx].OriginalLanguage = from
		c.messages[idx].IsTranslated = true
		c.refreshSearchLocked()
	}
}

// ReadMessage speaks a message aloud, in whichever language its toggle
// state currently shows. Any playback already running is stopped first. A
// response that arrives after the user stopped the readout is discarded
// by comparing a per-request token against the current one.
func (c *Controller) ReadMessage(ctx context.Context, id int64) {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return
	}

	c.stopPlaybackLocked()

	token := uuid.New().String()
	c.readingID = id
	c.readingToken = token
	text := c.messages[idx].DisplayContent()
	lang := c.messages[idx].DisplayLanguage()
	c.mu.Unlock()

	audio, contentType, err := c.gateway.Synthesize(ctx, text, lang)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readingToken != token {
		// Stopped (or replaced) while the request was outstanding.
		return
	}
	if err != nil {
		log.Printf("[session] tts failed for message %d: %v", id, err)
		c.readingID = 0
		c.readingToken = ""
		return
	}

	handle, err := c.player.Play(ctx, audio, contentType)
	if err != nil {
		log.Printf("[session] playback failed for message %d: %v", id, err)
		c.readingID = 0
		c.readingToken = ""
		return
	}
	c.playback = handle

	go func() {
		<-handle.Done()
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.readingToken == token {
			c.readingID = 0
			c.readingToken = ""
			c.playback = nil
		}
	}()
}

// StopReading cancels the active readout, if any.
func (c *Controller) StopReading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPlaybackLocked()
}

func (c *Controller) stopPlaybackLocked() {
	if c.playback != nil {
		c.playback.Stop()
		c.playback = nil
	}
	c.readingID = 0
	c.readingToken = ""
}

// StartRecognition begins streaming microphone audio to the recognizer.
// The composer shows accumulated final transcript plus the live interim
// one. Starting while a session is live tears the old one down first.
func (c *Controller) StartRecognition(ctx context.Context, source io.Reader) error {
	c.mu.Lock()
	if c.recognizing {
		c.stopRecognitionLocked()
	}

	ctx, cancel := context.WithCancel(ctx)
	c.mu.Unlock()

	transcripts, err := c.recognizer.Recognize(ctx, source)
	if err != nil {
		cancel()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recognizing = true
	c.recGen++
	gen := c.recGen
	c.recBase = c.input
	c.recFinal = ""
	c.recInterim = ""
	c.recCancel = cancel

	go func() {
		for tr := range transcripts {
			c.mu.Lock()
			if c.recGen != gen {
				// Stopped; late results must not touch the composer.
				c.mu.Unlock()
				return
			}
			if tr.Final {
				c.recFinal += tr.Text
				c.recInterim = ""
			} else {
				c.recInterim = tr.Text
			}
			c.mu.Unlock()
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.recGen == gen && c.recognizing {
			c.commitRecognitionLocked()
		}
	}()
	return nil
}

// StopRecognition ends the capture and commits only the final transcript
// to the composer; the interim tail is dropped.
func (c *Controller) StopRecognition() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recognizing {
		c.stopRecognitionLocked()
	}
}

// Recognizing reports whether a capture session is live.
func (c *Controller) Recognizing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recognizing
}

func (c *Controller) stopRecognitionLocked() {
	c.commitRecognitionLocked()
	c.recGen++
	if c.recCancel != nil {
		c.recCancel()
		c.recCancel = nil
	}
}

func (c *Controller) commitRecognitionLocked() {
	c.input = c.recBase + c.recFinal
	c.recognizing = false
	c.recBase = ""
	c.recFinal = ""
	c.recInterim = ""
}

// Search scans message content, both original and translated, for a
// case-insensitive substring and records matches in document order. An
// empty query clears the overlay.
func (c *Controller) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = query
	c.refreshSearchLocked()
}

func (c *Controller) refreshSearchLocked() {
	current := int64(0)
	if c.matchIndex >= 0 && c.matchIndex < len(c.matches) {
		current = c.matches[c.matchIndex]
	}

	c.matches = c.matches[:0]
	if c.searchQuery == "" {
		c.matchIndex = -1
		return
	}
	needle := strings.ToLower(c.searchQuery)

	for _, msg := range c.messages {
		if strings.Contains(strings.ToLower(msg.Content), needle) ||
			strings.Contains(strings.ToLower(msg.TranslatedContent), needle) {
			c.matches = append(c.matches, msg.ID)
		}
	}

	c.matchIndex = -1
	for i, id := range c.matches {
		if id == current {
			c.matchIndex = i
			break
		}
	}
	if c.matchIndex == -1 && len(c.matches) > 0 {
		c.matchIndex = 0
	}
}

// SearchQuery returns the active query.
func (c *Controller) SearchQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchQuery
}

// Matches returns the matching message ids in document order.
func (c *Controller) Matches() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(c.matches))
	copy(out, c.matches)
	return out
}

// CurrentMatch returns the focused match id; ok is false when there is no
// active match.
func (c *Controller) CurrentMatch() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matchIndex < 0 || c.matchIndex >= len(c.matches) {
		return 0, false
	}
	return c.matches[c.matchIndex], true
}

// NextMatch advances the focused match, wrapping past the end.
func (c *Controller) NextMatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.matches) == 0 {
		return
	}
	c.matchIndex = (c.matchIndex + 1) % len(c.matches)
}

// PrevMatch moves the focused match backwards, wrapping past the start.
func (c *Controller) PrevMatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.matches) == 0 {
		return
	}
	c.matchIndex = (c.matchIndex - 1 + len(c.matches)) % len(c.matches)
}

// Clear resets the session to the single greeting message, tearing down
// playback, recognition, the staged image and the search overlay.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopPlaybackLocked()
	if c.recognizing {
		c.recGen++
		if c.recCancel != nil {
			c.recCancel()
			c.recCancel = nil
		}
		c.recognizing = false
		c.recBase = ""
		c.recFinal = ""
		c.recInterim = ""
	}

	c.messages = []chat.Message{c.greetingMessage()}
	c.input = ""
	c.pendingImage = nil
	c.translatingID = 0
	c.searchQuery = ""
	c.matches = nil
	c.matchIndex = -1
}

func (c *Controller) indexLocked(id int64) int {
	for i := range c.messages {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}
