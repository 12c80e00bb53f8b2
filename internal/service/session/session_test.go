package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/chat"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/service/speech"
)

type fakeGateway struct {
	mu sync.Mutex

	chatReply    string
	chatErr      error
	chatCalls    int
	imageCalls   int
	lastMessage  string
	lastHadImage bool

	translateOut   string
	translateErr   error
	translateCalls int
	translateGate  chan struct{} // if set, Translate blocks until closed

	audioOut  []byte
	audioErr  error
	ttsCalls  int
	ttsGate   chan struct{}
	lastLang  i18n.Language
	lastText  string
	synthText string
}

func (g *fakeGateway) Chat(_ context.Context, message string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chatCalls++
	g.lastMessage = message
	g.lastHadImage = false
	return g.chatReply, g.chatErr
}

func (g *fakeGateway) ChatImage(_ context.Context, _ chat.Attachment, message string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.imageCalls++
	g.lastMessage = message
	g.lastHadImage = true
	return g.chatReply, g.chatErr
}

func (g *fakeGateway) Translate(_ context.Context, text string, from, to i18n.Language) (string, error) {
	g.mu.Lock()
	gate := g.translateGate
	g.translateCalls++
	g.lastText = text
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.translateOut, g.translateErr
}

func (g *fakeGateway) Synthesize(_ context.Context, text string, language i18n.Language) ([]byte, string, error) {
	g.mu.Lock()
	gate := g.ttsGate
	g.ttsCalls++
	g.synthText = text
	g.lastLang = language
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.audioOut, "audio/wav", g.audioErr
}

type fakeHandle struct {
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

func newFakeHandle() *fakeHandle { return &fakeHandle{done: make(chan struct{})} }

func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

func (h *fakeHandle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

type fakePlayer struct {
	mu      sync.Mutex
	handles []*fakeHandle
	err     error
}

func (p *fakePlayer) Play(context.Context, []byte, string) (speech.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	h := newFakeHandle()
	p.handles = append(p.handles, h)
	return h, nil
}

func (p *fakePlayer) active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, h := range p.handles {
		if !h.Stopped() {
			select {
			case <-h.done:
			default:
				n++
			}
		}
	}
	return n
}

type fakeRecognizer struct {
	transcripts chan speech.Transcript
	err         error
}

func (r *fakeRecognizer) Recognize(context.Context, io.Reader) (<-chan speech.Transcript, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.transcripts, nil
}

func newController(gw *fakeGateway) (*Controller, *fakePlayer) {
	localizer := i18n.NewLocalizer(i18n.English, nil)
	player := &fakePlayer{}
	return New(gw, localizer, speech.Unsupported{}, player), player
}

func TestNewSessionHasGreeting(t *testing.T) {
	c, _ := newController(&fakeGateway{})
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].IsUser)
	assert.Contains(t, msgs[0].Content, "farming assistant")
}

func TestSendMessageAppendsUserThenAssistant(t *testing.T) {
	gw := &fakeGateway{chatReply: "Rice grows well in June."}
	c, _ := newController(gw)

	c.SetInput("Hello")
	require.NoError(t, c.SendMessage(context.Background()))

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.True(t, msgs[1].IsUser)
	assert.Equal(t, "Hello", msgs[1].Content)
	assert.False(t, msgs[2].IsUser)
	assert.Equal(t, "Rice grows well in June.", msgs[2].Content)
	assert.Equal(t, i18n.English, msgs[2].OriginalLanguage)
	assert.Equal(t, 1, gw.chatCalls)
	assert.Empty(t, c.Input())
	assert.False(t, c.Sending())
}

func TestSendMessageIDsUnique(t *testing.T) {
	gw := &fakeGateway{chatReply: "ok"}
	c, _ := newController(gw)

	for i := 0; i < 10; i++ {
		c.SetInput("ping")
		require.NoError(t, c.SendMessage(context.Background()))
	}

	seen := map[int64]bool{}
	for _, m := range c.Messages() {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
}

func TestSendImageOnlyFallsBackToPlaceholder(t *testing.T) {
	gw := &fakeGateway{chatReply: "Looks like leaf blight."}
	c, _ := newController(gw)

	c.AttachImage(chat.Attachment{Name: "leaf.jpg", MIME: "image/jpeg", Data: []byte{1}, Preview: "data:image/jpeg;base64,AQ=="})
	require.NoError(t, c.SendMessage(context.Background()))

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Image uploaded", msgs[1].Content)
	assert.NotEmpty(t, msgs[1].ImageURL)
	assert.True(t, gw.lastHadImage, "image send must use the multipart call")
	assert.Equal(t, 1, gw.imageCalls)
	assert.Zero(t, gw.chatCalls)
	assert.Nil(t, c.PendingImage())
}

func TestSendEmptyIsRejected(t *testing.T) {
	gw := &fakeGateway{}
	c, _ := newController(gw)

	c.SetInput("   ")
	require.NoError(t, c.SendMessage(context.Background()))
	assert.Len(t, c.Messages(), 1)
	assert.Zero(t, gw.chatCalls)
}

func TestSendFailureAppendsErrorBubble(t *testing.T) {
	gw := &fakeGateway{chatErr: errors.New("connection refused")}
	c, _ := newController(gw)

	c.SetInput("Hello")
	err := c.SendMessage(context.Background())
	require.Error(t, err)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.False(t, msgs[2].IsUser)
	assert.True(t, msgs[2].IsError)
	assert.Contains(t, msgs[2].Content, "couldn't process")
	assert.False(t, c.Sending(), "sending flag must clear on failure")
}

func TestMalayalamReplyDetected(t *testing.T) {
	gw := &fakeGateway{chatReply: "നെല്ല് ജൂണിൽ നടുക."}
	c, _ := newController(gw)

	c.SetInput("paddy advice")
	require.NoError(t, c.SendMessage(context.Background()))

	msgs := c.Messages()
	assert.Equal(t, i18n.Malayalam, msgs[2].OriginalLanguage)
}

func TestLongInputTruncated(t *testing.T) {
	gw := &fakeGateway{chatReply: "ok"}
	c, _ := newController(gw)

	long := make([]rune, MaxMessageRunes+100)
	for i := range long {
		long[i] = 'a'
	}
	c.SetInput(string(long))
	require.NoError(t, c.SendMessage(context.Background()))

	assert.Len(t, []rune(gw.lastMessage), MaxMessageRunes)
}

func TestTranslationCacheReusedWithoutNetwork(t *testing.T) {
	gw := &fakeGateway{chatReply: "Good morning", translateOut: "സുപ്രഭാതം"}
	c, _ := newController(gw)

	c.SetInput("hi")
	require.NoError(t, c.SendMessage(context.Background()))
	id := c.Messages()[2].ID

	c.ToggleTranslation(context.Background(), id)
	require.Equal(t, 1, gw.translateCalls)
	msg := c.Messages()[2]
	assert.True(t, msg.IsTranslated)
	assert.Equal(t, "സുപ്രഭാതം", msg.TranslatedContent)

	// Back to original: no network call, cache kept.
	c.ToggleTranslation(context.Background(), id)
	assert.Equal(t, 1, gw.translateCalls)
	msg = c.Messages()[2]
	assert.False(t, msg.IsTranslated)
	assert.Equal(t, "സുപ്രഭാതം", msg.TranslatedContent)

	// Forward again: instant, still no network call.
	c.ToggleTranslation(context.Background(), id)
	assert.Equal(t, 1, gw.translateCalls)
	assert.True(t, c.Messages()[2].IsTranslated)
}

func TestTranslationSingleFlight(t *testing.T) {
	gate := make(chan struct{})
	gw := &fakeGateway{chatReply: "first", translateOut: "one", translateGate: gate}
	c, _ := newController(gw)

	c.SetInput("a")
	require.NoError(t, c.SendMessage(context.Background()))
	gw.mu.Lock()
	gw.chatReply = "second"
	gw.mu.Unlock()
	c.SetInput("b")
	require.NoError(t, c.SendMessage(context.Background()))

	msgs := c.Messages()
	firstID, secondID := msgs[2].ID, msgs[4].ID

	done := make(chan struct{})
	go func() {
		c.ToggleTranslation(context.Background(), firstID)
		close(done)
	}()

	require.Eventually(t, func() bool { return c.TranslatingID() == firstID }, time.Second, time.Millisecond)

	// A second toggle while the first is in flight is dropped.
	c.ToggleTranslation(context.Background(), secondID)
	assert.Equal(t, 1, gw.translateCalls)

	close(gate)
	<-done
	assert.Zero(t, c.TranslatingID())
}

func TestTranslationFailureIsSilent(t *testing.T) {
	gw := &fakeGateway{chatReply: "hello", translateErr: errors.New("boom")}
	c, _ := newController(gw)

	c.SetInput("x")
	require.NoError(t, c.SendMessage(context.Background()))
	id := c.Messages()[2].ID
	before := len(c.Messages())

	c.ToggleTranslation(context.Background(), id)

	assert.Len(t, c.Messages(), before, "no error bubble for translation failures")
	assert.Zero(t, c.TranslatingID())
	assert.False(t, c.Messages()[2].IsTranslated)
}

func TestUserMessagesAreNotTranslated(t *testing.T) {
	gw := &fakeGateway{chatReply: "reply"}
	c, _ := newController(gw)

	c.SetInput("mine")
	require.NoError(t, c.SendMessage(context.Background()))
	userID := c.Messages()[1].ID

	c.ToggleTranslation(context.Background(), userID)
	assert.Zero(t, gw.translateCalls)
	assert.False(t, c.Messages()[1].IsTranslated)
}

func TestReadMessageStopsPreviousPlayback(t *testing.T) {
	gw := &fakeGateway{chatReply: "a", audioOut: []byte{1, 2, 3}}
	c, player := newController(gw)

	c.SetInput("one")
	require.NoError(t, c.SendMessage(context.Background()))
	gw.mu.Lock()
	gw.chatReply = "b"
	gw.mu.Unlock()
	c.SetInput("two")
	require.NoError(t, c.SendMessage(context.Background()))

	msgs := c.Messages()
	first, second := msgs[2].ID, msgs[4].ID

	c.ReadMessage(context.Background(), first)
	require.Equal(t, first, c.ReadingID())
	require.Equal(t, 1, player.active())

	c.ReadMessage(context.Background(), second)
	assert.Equal(t, second, c.ReadingID())
	assert.Equal(t, 1, player.active(), "at most one playback handle at a time")
	assert.True(t, player.handles[0].Stopped())
}

func TestStaleTTSResponseDiscarded(t *testing.T) {
	gate := make(chan struct{})
	gw := &fakeGateway{chatReply: "speak me", audioOut: []byte{9}, ttsGate: gate}
	c, player := newController(gw)

	c.SetInput("q")
	require.NoError(t, c.SendMessage(context.Background()))
	id := c.Messages()[2].ID

	done := make(chan struct{})
	go func() {
		c.ReadMessage(context.Background(), id)
		close(done)
	}()

	require.Eventually(t, func() bool { return c.ReadingID() == id }, time.Second, time.Millisecond)

	// User stops the readout while the synthesis call is still in flight.
	c.StopReading()
	close(gate)
	<-done

	assert.Zero(t, c.ReadingID())
	assert.Zero(t, player.active(), "late audio must not start playing")
}

func TestTTSFailureIsSilent(t *testing.T) {
	gw := &fakeGateway{chatReply: "text", audioErr: errors.New("tts down")}
	c, _ := newController(gw)

	c.SetInput("y")
	require.NoError(t, c.SendMessage(context.Background()))
	id := c.Messages()[2].ID
	before := len(c.Messages())

	c.ReadMessage(context.Background(), id)

	assert.Len(t, c.Messages(), before)
	assert.Zero(t, c.ReadingID())
}

func TestReadTranslatedMessageUsesTranslation(t *testing.T) {
	gw := &fakeGateway{chatReply: "Good evening", translateOut: "ശുഭ സന്ധ്യ", audioOut: []byte{1}}
	c, _ := newController(gw)

	c.SetInput("z")
	require.NoError(t, c.SendMessage(context.Background()))
	id := c.Messages()[2].ID

	c.ToggleTranslation(context.Background(), id)
	c.ReadMessage(context.Background(), id)

	assert.Equal(t, "ശുഭ സന്ധ്യ", gw.synthText)
	assert.Equal(t, i18n.Malayalam, gw.lastLang)
}

func TestRecognitionFinalPlusInterim(t *testing.T) {
	transcripts := make(chan speech.Transcript, 4)
	rec := &fakeRecognizer{transcripts: transcripts}
	localizer := i18n.NewLocalizer(i18n.English, nil)
	c := New(&fakeGateway{}, localizer, rec, &fakePlayer{})

	require.NoError(t, c.StartRecognition(context.Background(), nil))

	transcripts <- speech.Transcript{Text: "how is"}
	require.Eventually(t, func() bool { return c.Input() == "how is" }, time.Second, time.Millisecond)

	transcripts <- speech.Transcript{Text: "how is the weather", Final: true}
	require.Eventually(t, func() bool { return c.Input() == "how is the weather" }, time.Second, time.Millisecond)

	transcripts <- speech.Transcript{Text: " in kochi"}
	require.Eventually(t, func() bool { return c.Input() == "how is the weather in kochi" }, time.Second, time.Millisecond)

	// Stop drops the interim tail, keeping only the final transcript.
	c.StopRecognition()
	assert.Equal(t, "how is the weather", c.Input())
	assert.False(t, c.Recognizing())
}

func TestLateRecognitionResultDiscarded(t *testing.T) {
	transcripts := make(chan speech.Transcript, 4)
	rec := &fakeRecognizer{transcripts: transcripts}
	localizer := i18n.NewLocalizer(i18n.English, nil)
	c := New(&fakeGateway{}, localizer, rec, &fakePlayer{})

	require.NoError(t, c.StartRecognition(context.Background(), nil))
	transcripts <- speech.Transcript{Text: "hello", Final: true}
	require.Eventually(t, func() bool { return c.Input() == "hello" }, time.Second, time.Millisecond)

	c.StopRecognition()

	// A result arriving after stop must not mutate the composer.
	transcripts <- speech.Transcript{Text: " world", Final: true}
	close(transcripts)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "hello", c.Input())
}

func TestRecognitionUnsupported(t *testing.T) {
	c, _ := newController(&fakeGateway{})
	err := c.StartRecognition(context.Background(), nil)
	assert.ErrorIs(t, err, speech.ErrUnsupported)
}

func TestSearchMatchesAndWraparound(t *testing.T) {
	gw := &fakeGateway{chatReply: "The rice market is strong"}
	c, _ := newController(gw)

	c.SetInput("rice prices?")
	require.NoError(t, c.SendMessage(context.Background()))
	gw.mu.Lock()
	gw.chatReply = "Wheat too"
	gw.mu.Unlock()
	c.SetInput("and wheat?")
	require.NoError(t, c.SendMessage(context.Background()))

	c.Search("RICE")
	matches := c.Matches()
	require.Len(t, matches, 2)

	msgs := c.Messages()
	assert.Equal(t, msgs[1].ID, matches[0], "matches in document order")
	assert.Equal(t, msgs[2].ID, matches[1])

	cur, ok := c.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, matches[0], cur)

	c.NextMatch()
	cur, _ = c.CurrentMatch()
	assert.Equal(t, matches[1], cur)

	c.NextMatch() // wraps
	cur, _ = c.CurrentMatch()
	assert.Equal(t, matches[0], cur)

	c.PrevMatch() // wraps backwards
	cur, _ = c.CurrentMatch()
	assert.Equal(t, matches[1], cur)
}

func TestSearchIncludesTranslatedContent(t *testing.T) {
	gw := &fakeGateway{chatReply: "Good night", translateOut: "ശുഭ രാത്രി"}
	c, _ := newController(gw)

	c.SetInput("bye")
	require.NoError(t, c.SendMessage(context.Background()))
	id := c.Messages()[2].ID
	c.ToggleTranslation(context.Background(), id)

	c.Search("രാത്രി")
	require.Len(t, c.Matches(), 1)
	assert.Equal(t, id, c.Matches()[0])
}

func TestEmptySearchClearsState(t *testing.T) {
	gw := &fakeGateway{chatReply: "hello there"}
	c, _ := newController(gw)

	c.SetInput("hi")
	require.NoError(t, c.SendMessage(context.Background()))

	c.Search("hello")
	require.NotEmpty(t, c.Matches())

	c.Search("")
	assert.Empty(t, c.Matches())
	_, ok := c.CurrentMatch()
	assert.False(t, ok)
}

func TestClearResetsEverything(t *testing.T) {
	gw := &fakeGateway{chatReply: "reply", audioOut: []byte{1}}
	c, player := newController(gw)

	for i := 0; i < 2; i++ {
		c.SetInput("msg")
		require.NoError(t, c.SendMessage(context.Background()))
	}
	require.Len(t, c.Messages(), 5)

	id := c.Messages()[2].ID
	c.ReadMessage(context.Background(), id)
	require.Equal(t, 1, player.active())
	c.AttachImage(chat.Attachment{Name: "x.jpg"})
	c.Search("msg")

	c.Clear()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "farming assistant")
	assert.Zero(t, player.active(), "playback must stop on clear")
	assert.Zero(t, c.ReadingID())
	assert.Nil(t, c.PendingImage())
	assert.Empty(t, c.Matches())
	assert.Empty(t, c.SearchQuery())
}
