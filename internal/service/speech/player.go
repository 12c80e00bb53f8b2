package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrNoPlayer means no audio player binary was found on this device.
var ErrNoPlayer = errors.New("no audio player available")

// Handle controls one in-flight playback.
type Handle interface {
	// Done is closed when playback finishes, whether it ran to completion
	// or was stopped.
	Done() <-chan struct{}
	// Stop interrupts playback. Safe to call multiple times.
	Stop()
}

// Player plays a synthesized audio payload.
type Player interface {
	Play(ctx context.Context, audio []byte, contentType string) (Handle, error)
}

// CommandPlayer plays audio by shelling out to the first platform player
// found on PATH. The payload is written to a temp file which is removed
// when playback ends.
type CommandPlayer struct {
	candidates []string
}

// NewCommandPlayer probes the usual platform players.
func NewCommandPlayer() *CommandPlayer {
	return &CommandPlayer{
		candidates: []string{"afplay", "aplay", "paplay", "ffplay"},
	}
}

func (p *CommandPlayer) lookup() (string, error) {
	for _, name := range p.candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoPlayer
}

// Play implements Player.
func (p *CommandPlayer) Play(ctx context.Context, audio []byte, contentType string) (Handle, error) {
	bin, err := p.lookup()
	if err != nil {
		return nil, err
	}

	ext := ".wav"
	if contentType == "audio/mpeg" || contentType == "audio/mp3" {
		ext = ".mp3"
	}
	path := filepath.Join(os.TempDir(), "krishi-tts-"+uuid.New().String()+ext)
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	args := []string{path}
	if filepath.Base(bin) == "ffplay" {
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		os.Remove(path)
		return nil, fmt.Errorf("failed to start audio player: %w", err)
	}

	h := &commandHandle{done: make(chan struct{}), cancel: cancel}
	go func() {
		cmd.Wait()
		os.Remove(path)
		close(h.done)
	}()
	return h, nil
}

type commandHandle struct {
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once
}

func (h *commandHandle) Done() <-chan struct{} { return h.done }

func (h *commandHandle) Stop() {
	h.once.Do(h.cancel)
}
