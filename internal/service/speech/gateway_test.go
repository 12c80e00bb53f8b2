package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// fakeGateway upgrades a test connection, consumes the session request and
// audio chunks, then replies with interim and final transcripts.
func fakeGateway(t *testing.T, interim []string, final string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// Session request frame first.
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read session request: %v", err)
			return
		}
		msg, err := DecodeMessage(bytes.NewReader(data))
		if err != nil || msg.Header.MessageType != FullClientRequest {
			t.Errorf("unexpected opening frame: %v", err)
			return
		}

		// Drain audio until the final chunk.
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			chunk, err := DecodeMessage(bytes.NewReader(data))
			if err != nil {
				t.Errorf("decode audio chunk: %v", err)
				return
			}
			if chunk.IsLastPacket() {
				break
			}
		}

		write := func(text string, last bool) {
			payload, _ := json.Marshal(map[string]any{
				"code":   0,
				"result": map[string]any{"text": text},
			})
			flags := NoSequenceNumber
			if last {
				flags = LastPacketNoSequence
			}
			frame, _ := EncodeMessage(&Message{
				Header:      NewHeader(FullServerResponse, flags, JSONSerialization, NoCompression),
				PayloadSize: uint32(len(payload)),
				Payload:     payload,
			})
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				t.Errorf("write transcript: %v", err)
			}
		}

		for _, text := range interim {
			write(text, false)
		}
		write(final, true)
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestGatewayRecognizeStreamsTranscripts(t *testing.T) {
	srv := fakeGateway(t, []string{"how is", "how is the weather"}, "how is the weather today")
	defer srv.Close()

	rec := NewGatewayRecognizer(GatewayOptions{
		URL:        wsURL(srv),
		AppID:      "test-app",
		SampleRate: 16000,
		Language:   i18n.English,
		Timeout:    5 * time.Second,
	})

	audio := bytes.NewReader(make([]byte, 6400))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transcripts, err := rec.Recognize(ctx, audio)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	var got []Transcript
	for tr := range transcripts {
		got = append(got, tr)
	}

	if len(got) == 0 {
		t.Fatal("No transcripts received")
	}
	last := got[len(got)-1]
	if !last.Final {
		t.Error("Last transcript not marked final")
	}
	if last.Text != "how is the weather today" {
		t.Errorf("Final transcript mismatch: got %q", last.Text)
	}
	for _, tr := range got[:len(got)-1] {
		if tr.Final {
			t.Errorf("Interim transcript marked final: %q", tr.Text)
		}
	}
}

func TestGatewayRecognizeWithoutURL(t *testing.T) {
	rec := NewGatewayRecognizer(GatewayOptions{})
	if _, err := rec.Recognize(context.Background(), bytes.NewReader(nil)); err != ErrUnsupported {
		t.Fatalf("Expected ErrUnsupported, got %v", err)
	}
}

func TestUnsupportedRecognizer(t *testing.T) {
	var rec Recognizer = Unsupported{}
	if _, err := rec.Recognize(context.Background(), bytes.NewReader(nil)); err != ErrUnsupported {
		t.Fatalf("Expected ErrUnsupported, got %v", err)
	}
}
