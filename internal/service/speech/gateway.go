package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
)

// GatewayOptions configure the streaming recognition gateway.
type GatewayOptions struct {
	URL         string // websocket endpoint
	AppID       string
	AccessToken string
	SampleRate  int           // PCM sample rate of the capture, Hz
	Language    i18n.Language // preferred recognition language
	Timeout     time.Duration
}

// GatewayRecognizer streams captured audio to the voice gateway over a
// framed binary websocket and relays transcript updates.
type GatewayRecognizer struct {
	opts   GatewayOptions
	dialer *websocket.Dialer
}

// NewGatewayRecognizer returns a recognizer for the configured gateway.
func NewGatewayRecognizer(opts GatewayOptions) *GatewayRecognizer {
	if opts.SampleRate == 0 {
		opts.SampleRate = 16000
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &GatewayRecognizer{
		opts: opts,
		dialer: &websocket.Dialer{
			HandshakeTimeout: opts.Timeout,
		},
	}
}

// sessionRequest is the JSON payload of the opening frame.
type sessionRequest struct {
	User struct {
		UID string `json:"uid,omitempty"`
	} `json:"user,omitempty"`
	Audio struct {
		Language string `json:"language,omitempty"`
		Format   string `json:"format"`
		Codec    string `json:"codec,omitempty"`
		Rate     int    `json:"rate,omitempty"`
		Bits     int    `json:"bits,omitempty"`
		Channel  int    `json:"channel,omitempty"`
	} `json:"audio"`
	Request struct {
		EnablePunc     bool   `json:"enable_punc,omitempty"`
		ShowUtterances bool   `json:"show_utterances,omitempty"`
		ResultType     string `json:"result_type,omitempty"`
		EndWindowSize  int    `json:"end_window_size,omitempty"`
	} `json:"request"`
}

// serverMessage is the JSON payload of a FullServerResponse frame.
type serverMessage struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Sequence int    `json:"sequence"`
	Result   struct {
		Text       string `json:"text"`
		Utterances []struct {
			Text     string `json:"text"`
			Definite bool   `json:"definite"`
		} `json:"utterances,omitempty"`
	} `json:"result,omitempty"`
}

// Recognize implements Recognizer.
func (g *GatewayRecognizer) Recognize(ctx context.Context, source io.Reader) (<-chan Transcript, error) {
	if g.opts.URL == "" {
		return nil, ErrUnsupported
	}

	sessionID := uuid.New().String()

	header := http.Header{}
	header.Set("X-Api-App-Key", g.opts.AppID)
	header.Set("X-Api-Access-Key", g.opts.AccessToken)
	header.Set("X-Api-Connect-Id", sessionID)

	conn, resp, err := g.dialer.DialContext(ctx, g.opts.URL, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("failed to connect to recognition gateway: %w", err)
	}

	if logid := resp.Header.Get("X-Tt-Logid"); logid != "" {
		log.Printf("[speech] gateway connected, logid=%s", logid)
	}

	if err := g.sendSessionRequest(conn); err != nil {
		conn.Close()
		return nil, err
	}

	out := make(chan Transcript, 8)
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(out)
		defer cancel()
		defer conn.Close()

		sendErrCh := make(chan error, 1)
		go func() {
			sendErrCh <- g.sendAudio(ctx, conn, source)
		}()

		recvErrCh := make(chan error, 1)
		go func() {
			recvErrCh <- g.receiveTranscripts(ctx, conn, out)
		}()

		for {
			select {
			case err := <-sendErrCh:
				if err != nil {
					log.Printf("[speech] audio send failed: %v", err)
					return
				}
				sendErrCh = nil
			case err := <-recvErrCh:
				if err != nil {
					log.Printf("[speech] session %s ended: %v", sessionID, err)
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (g *GatewayRecognizer) sendSessionRequest(conn *websocket.Conn) error {
	var req sessionRequest
	req.User.UID = uuid.New().String()
	req.Audio.Format = "pcm"
	req.Audio.Codec = "raw"
	req.Audio.Rate = g.opts.SampleRate
	req.Audio.Bits = 16
	req.Audio.Channel = 1
	if g.opts.Language.Valid() {
		req.Audio.Language = string(g.opts.Language)
	}
	req.Request.EnablePunc = true
	req.Request.ShowUtterances = true
	req.Request.ResultType = "full"
	req.Request.EndWindowSize = 800

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal session request: %w", err)
	}

	compressed, err := GzipCompression.Compress(payload)
	if err != nil {
		return fmt.Errorf("failed to compress payload: %w", err)
	}

	frame, err := EncodeMessage(NewSessionRequest(compressed, GzipCompression))
	if err != nil {
		return fmt.Errorf("failed to encode session request: %w", err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("failed to send session request: %w", err)
	}
	return nil
}

// sendAudio streams the capture in ~200ms chunks. Pacing matches the
// capture rate so the gateway sees a realtime stream.
func (g *GatewayRecognizer) sendAudio(ctx context.Context, conn *websocket.Conn, source io.Reader) error {
	chunkSize := g.opts.SampleRate * 2 / 5 // 16-bit mono, 200ms
	buf := make([]byte, chunkSize)
	sequence := int32(2) // the session request occupies sequence 1

	sent := false
	for {
		n, readErr := io.ReadFull(source, buf)
		isLast := readErr != nil
		if n > 0 {
			compressed, err := GzipCompression.Compress(buf[:n])
			if err != nil {
				return fmt.Errorf("failed to compress audio chunk: %w", err)
			}
			frame, err := EncodeMessage(NewAudioChunk(compressed, sequence, isLast, GzipCompression))
			if err != nil {
				return fmt.Errorf("failed to encode audio chunk: %w", err)
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return fmt.Errorf("failed to send audio chunk: %w", err)
			}
			sequence++
			sent = true
		}

		if isLast {
			if !sent {
				return ErrNoAudio
			}
			if n == 0 {
				// Close the stream with an empty final chunk.
				frame, err := EncodeMessage(NewAudioChunk(nil, sequence, true, NoCompression))
				if err != nil {
					return fmt.Errorf("failed to encode final chunk: %w", err)
				}
				if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
					return fmt.Errorf("failed to send final chunk: %w", err)
				}
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func (g *GatewayRecognizer) receiveTranscripts(ctx context.Context, conn *websocket.Conn, out chan<- Transcript) error {
	var lastText string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read gateway response: %w", err)
		}

		msg, err := DecodeMessage(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode gateway frame: %w", err)
		}

		switch msg.Header.MessageType {
		case ErrorMessage:
			payload, err := msg.Header.CompressionMethod.Decompress(msg.Payload)
			if err != nil {
				return fmt.Errorf("gateway error frame decode failed: %w", err)
			}
			return fmt.Errorf("gateway error %d: %s", msg.ErrorCode, string(payload))

		case FullServerResponse:
			payload, err := msg.Header.CompressionMethod.Decompress(msg.Payload)
			if err != nil {
				return fmt.Errorf("failed to decompress transcript payload: %w", err)
			}

			var server serverMessage
			if err := json.Unmarshal(payload, &server); err != nil {
				log.Printf("[speech] failed to unmarshal transcript: %v", err)
				continue
			}

			if server.Code != 0 && server.Code != 20000000 {
				return fmt.Errorf("gateway api error %d: %s", server.Code, server.Message)
			}

			text := server.Result.Text
			if text == "" && len(server.Result.Utterances) > 0 {
				var builder strings.Builder
				for _, u := range server.Result.Utterances {
					if builder.Len() > 0 {
						builder.WriteString(" ")
					}
					builder.WriteString(u.Text)
				}
				text = builder.String()
			}
			if text != "" {
				lastText = text
			}

			if msg.IsLastPacket() || server.Sequence < 0 {
				select {
				case out <- Transcript{Text: lastText, Final: true}:
				case <-ctx.Done():
				}
				return nil
			}

			if text != "" {
				select {
				case out <- Transcript{Text: text}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}
