// Package camera manages the device camera used for crop photos. A single
// stream may be open at a time; every exit path releases it so the device
// indicator never stays lit after the capture UI closes.
package camera

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/chat"
)

var (
	// ErrPermissionDenied means camera access was refused by the platform.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrNoDevice means no camera is present.
	ErrNoDevice = errors.New("no camera device available")
	// ErrNotOpen means a capture was attempted with no open stream.
	ErrNotOpen = errors.New("camera not open")
)

// Facing selects which camera of the device to open.
type Facing string

const (
	FacingBack  Facing = "environment"
	FacingFront Facing = "user"
)

// Flip returns the opposite camera.
func (f Facing) Flip() Facing {
	if f == FacingBack {
		return FacingFront
	}
	return FacingBack
}

// Stream is one live camera feed.
type Stream interface {
	// Capture grabs a still frame as an image attachment.
	Capture(ctx context.Context) (chat.Attachment, error)
	// Close releases the feed. Idempotent.
	Close() error
}

// Device opens camera streams.
type Device interface {
	Open(ctx context.Context, facing Facing) (Stream, error)
}

// Controller serializes access to the device camera.
type Controller struct {
	device Device

	mu     sync.Mutex
	stream Stream
	facing Facing
}

// NewController wraps a device. A nil device behaves as ErrNoDevice.
func NewController(device Device) *Controller {
	return &Controller{device: device, facing: FacingBack}
}

// Open starts a stream with the last used facing. Opening while already
// open is a no-op.
func (c *Controller) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		return nil
	}
	if c.device == nil {
		return ErrNoDevice
	}

	stream, err := c.device.Open(ctx, c.facing)
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	c.stream = stream
	return nil
}

// Switch flips between the front and back camera. With a stream open the
// current one is released before the new side opens; on failure the camera
// stays closed rather than holding a half-switched feed. While closed it
// only changes which side the next Open uses.
func (c *Controller) Switch(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream == nil {
		c.facing = c.facing.Flip()
		return nil
	}

	if err := c.stream.Close(); err != nil {
		log.Printf("[camera] release before switch failed: %v", err)
	}
	c.stream = nil
	c.facing = c.facing.Flip()

	stream, err := c.device.Open(ctx, c.facing)
	if err != nil {
		return fmt.Errorf("failed to open %s camera: %w", c.facing, err)
	}
	c.stream = stream
	return nil
}

// Shutter captures a still from the open stream and closes it. The stream
// is released even when the capture fails.
func (c *Controller) Shutter(ctx context.Context) (chat.Attachment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream == nil {
		return chat.Attachment{}, ErrNotOpen
	}

	att, err := c.stream.Capture(ctx)
	c.closeLocked()
	if err != nil {
		return chat.Attachment{}, fmt.Errorf("failed to capture photo: %w", err)
	}
	return att, nil
}

// Close releases the stream if one is open. Safe to call at any time.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

// Active reports whether a stream is currently open.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream != nil
}

// Facing returns the side the next Open will use.
func (c *Controller) Facing() Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

func (c *Controller) closeLocked() {
	if c.stream == nil {
		return
	}
	if err := c.stream.Close(); err != nil {
		log.Printf("[camera] release failed: %v", err)
	}
	c.stream = nil
}
