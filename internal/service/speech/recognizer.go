package speech

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrUnsupported means no voice gateway is configured on this device.
	ErrUnsupported = errors.New("speech recognition not supported")
	// ErrPermissionDenied means the gateway rejected our credentials.
	ErrPermissionDenied = errors.New("speech permission denied")
	// ErrNoAudio means the capture produced no audio to recognize.
	ErrNoAudio = errors.New("no audio data to send")
)

// Transcript is one recognition update. Interim transcripts replace each
// other; a final transcript is committed by the caller.
type Transcript struct {
	Text  string
	Final bool
}

// Recognizer turns captured audio into a stream of transcripts.
type Recognizer interface {
	// Recognize streams audio from source to the recognizer and emits
	// transcript updates on the returned channel. The channel is closed
	// once the final transcript has been emitted or the context ends.
	Recognize(ctx context.Context, source io.Reader) (<-chan Transcript, error)
}

// Unsupported is the Recognizer used when no gateway is configured. Every
// call fails with ErrUnsupported so the UI can fall back to typing.
type Unsupported struct{}

func (Unsupported) Recognize(context.Context, io.Reader) (<-chan Transcript, error) {
	return nil, ErrUnsupported
}
