package camera

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/chat"
)

type fakeStream struct {
	facing     Facing
	closed     int
	captureErr error
}

func (s *fakeStream) Capture(context.Context) (chat.Attachment, error) {
	if s.captureErr != nil {
		return chat.Attachment{}, s.captureErr
	}
	return chat.Attachment{Name: "photo.jpg", MIME: "image/jpeg", Data: []byte{0x01}}, nil
}

func (s *fakeStream) Close() error {
	s.closed++
	return nil
}

type fakeDevice struct {
	streams    []*fakeStream
	openErr    error
	captureErr error
}

func (d *fakeDevice) Open(_ context.Context, facing Facing) (Stream, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	s := &fakeStream{facing: facing, captureErr: d.captureErr}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *fakeDevice) openStreams() int {
	n := 0
	for _, s := range d.streams {
		if s.closed == 0 {
			n++
		}
	}
	return n
}

func TestShutterReleasesStream(t *testing.T) {
	device := &fakeDevice{}
	ctrl := NewController(device)

	require.NoError(t, ctrl.Open(context.Background()))
	assert.True(t, ctrl.Active())

	att, err := ctrl.Shutter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", att.MIME)
	assert.False(t, ctrl.Active())
	assert.Zero(t, device.openStreams())
}

func TestShutterReleasesStreamOnCaptureFailure(t *testing.T) {
	device := &fakeDevice{captureErr: errors.New("sensor fault")}
	ctrl := NewController(device)

	require.NoError(t, ctrl.Open(context.Background()))
	_, err := ctrl.Shutter(context.Background())
	require.Error(t, err)

	assert.False(t, ctrl.Active())
	assert.Zero(t, device.openStreams(), "stream must be released even when capture fails")
}

func TestSwitchFlipsFacing(t *testing.T) {
	device := &fakeDevice{}
	ctrl := NewController(device)

	require.NoError(t, ctrl.Open(context.Background()))
	assert.Equal(t, FacingBack, ctrl.Facing())

	require.NoError(t, ctrl.Switch(context.Background()))
	assert.Equal(t, FacingFront, ctrl.Facing())
	assert.Equal(t, 1, device.openStreams(), "old stream must be closed before the new one opens")

	require.NoError(t, ctrl.Switch(context.Background()))
	assert.Equal(t, FacingBack, ctrl.Facing())
}

func TestSwitchFailureLeavesCameraClosed(t *testing.T) {
	device := &fakeDevice{}
	ctrl := NewController(device)
	require.NoError(t, ctrl.Open(context.Background()))

	device.openErr = ErrPermissionDenied
	err := ctrl.Switch(context.Background())
	require.Error(t, err)
	assert.False(t, ctrl.Active())
	assert.Zero(t, device.openStreams())
}

func TestSwitchWhileClosedSelectsNextFacing(t *testing.T) {
	device := &fakeDevice{}
	ctrl := NewController(device)

	require.NoError(t, ctrl.Switch(context.Background()))
	assert.Equal(t, FacingFront, ctrl.Facing())
	assert.False(t, ctrl.Active(), "switching while closed must not open a stream")

	require.NoError(t, ctrl.Open(context.Background()))
	assert.Equal(t, FacingFront, device.streams[0].facing)
}

func TestOpenIsIdempotent(t *testing.T) {
	device := &fakeDevice{}
	ctrl := NewController(device)

	require.NoError(t, ctrl.Open(context.Background()))
	require.NoError(t, ctrl.Open(context.Background()))
	assert.Len(t, device.streams, 1)
}

func TestCloseWithoutOpen(t *testing.T) {
	ctrl := NewController(&fakeDevice{})
	ctrl.Close() // must not panic
	assert.False(t, ctrl.Active())
}

func TestNilDevice(t *testing.T) {
	ctrl := NewController(nil)
	assert.ErrorIs(t, ctrl.Open(context.Background()), ErrNoDevice)

	_, err := ctrl.Shutter(context.Background())
	assert.ErrorIs(t, err, ErrNotOpen)
}
