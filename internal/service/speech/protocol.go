// Package speech provides streaming speech recognition against the voice
// gateway and local playback of synthesized audio. Recognition speaks the
// gateway's framed binary websocket protocol; playback shells out to the
// platform audio player.
package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// ProtocolVersion is the framed-protocol version the gateway speaks.
const ProtocolVersion = 0b0001

// MessageType occupies the high nibble of the second header byte.
type MessageType uint8

const (
	// FullClientRequest carries the JSON session parameters.
	FullClientRequest MessageType = 0b0001
	// AudioOnlyRequest carries one chunk of captured audio.
	AudioOnlyRequest MessageType = 0b0010
	// FullServerResponse carries a JSON transcript update.
	FullServerResponse MessageType = 0b1001
	// ErrorMessage carries a gateway error code and description.
	ErrorMessage MessageType = 0b1111
)

// MessageFlags occupy the low nibble of the second header byte.
type MessageFlags uint8

const (
	// NoSequenceNumber means the header is not followed by a sequence.
	NoSequenceNumber MessageFlags = 0b0000
	// PositiveSequenceNumber means a positive int32 sequence follows.
	PositiveSequenceNumber MessageFlags = 0b0001
	// LastPacketNoSequence marks the final packet without a sequence.
	LastPacketNoSequence MessageFlags = 0b0010
	// NegativeSequenceNumber marks the final packet with a negated sequence.
	NegativeSequenceNumber MessageFlags = 0b0011
)

// SerializationMethod occupies the high nibble of the third header byte.
type SerializationMethod uint8

const (
	NoSerialization   SerializationMethod = 0b0000
	JSONSerialization SerializationMethod = 0b0001
)

// CompressionMethod occupies the low nibble of the third header byte.
type CompressionMethod uint8

const (
	NoCompression   CompressionMethod = 0b0000
	GzipCompression CompressionMethod = 0b0001
)

// Header is the fixed 4-byte frame header.
type Header struct {
	ProtocolVersion     uint8
	HeaderSize          uint8 // in 4-byte units
	MessageType         MessageType
	MessageFlags        MessageFlags
	SerializationMethod SerializationMethod
	CompressionMethod   CompressionMethod
	Reserved            uint8
}

// Message is one decoded frame.
type Message struct {
	Header      Header
	Sequence    int32 // present depending on MessageFlags
	ErrorCode   uint32
	PayloadSize uint32
	Payload     []byte
}

// NewHeader assembles a header for the given type and encodings.
func NewHeader(msgType MessageType, flags MessageFlags, serialization SerializationMethod, compression CompressionMethod) Header {
	return Header{
		ProtocolVersion:     ProtocolVersion,
		HeaderSize:          0b0001,
		MessageType:         msgType,
		MessageFlags:        flags,
		SerializationMethod: serialization,
		CompressionMethod:   compression,
		Reserved:            0x00,
	}
}

// Encode packs the header into its 4-byte wire form.
func (h *Header) Encode() []byte {
	buf := make([]byte, 4)
	buf[0] = (h.ProtocolVersion << 4) | h.HeaderSize
	buf[1] = (uint8(h.MessageType) << 4) | uint8(h.MessageFlags)
	buf[2] = (uint8(h.SerializationMethod) << 4) | uint8(h.CompressionMethod)
	buf[3] = h.Reserved
	return buf
}

// DecodeHeader unpacks a 4-byte wire header.
func DecodeHeader(data []byte) (*Header, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("header data too short: got %d, need 4", len(data))
	}

	header := &Header{
		ProtocolVersion:     (data[0] >> 4) & 0x0F,
		HeaderSize:          data[0] & 0x0F,
		MessageType:         MessageType((data[1] >> 4) & 0x0F),
		MessageFlags:        MessageFlags(data[1] & 0x0F),
		SerializationMethod: SerializationMethod((data[2] >> 4) & 0x0F),
		CompressionMethod:   CompressionMethod(data[2] & 0x0F),
		Reserved:            data[3],
	}

	if header.ProtocolVersion != ProtocolVersion {
		return nil, fmt.Errorf("unsupported protocol version: %d", header.ProtocolVersion)
	}

	return header, nil
}

// EncodeMessage serializes a full frame.
func EncodeMessage(msg *Message) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.Write(msg.Header.Encode())

	switch msg.Header.MessageFlags & 0b0011 {
	case PositiveSequenceNumber, NegativeSequenceNumber:
		seqBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(seqBytes, uint32(msg.Sequence))
		buf.Write(seqBytes)
	}

	sizeBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(sizeBytes, msg.PayloadSize)
	buf.Write(sizeBytes)

	if len(msg.Payload) > 0 {
		buf.Write(msg.Payload)
	}

	return buf.Bytes(), nil
}

// DecodeMessage reads and parses one frame from the reader.
func DecodeMessage(reader io.Reader) (*Message, error) {
	headerBytes := make([]byte, 4)
	if _, err := io.ReadFull(reader, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	header, err := DecodeHeader(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}

	msg := &Message{Header: *header}

	// Skip any extended header the gateway may add in later versions.
	extraHeaderBytes := int(header.HeaderSize)*4 - 4
	if extraHeaderBytes > 0 {
		extra := make([]byte, extraHeaderBytes)
		if _, err := io.ReadFull(reader, extra); err != nil {
			return nil, fmt.Errorf("failed to read extended header: %w", err)
		}
	}

	switch header.MessageFlags & 0b0011 {
	case PositiveSequenceNumber, NegativeSequenceNumber:
		seqBytes := make([]byte, 4)
		if _, err := io.ReadFull(reader, seqBytes); err != nil {
			return nil, fmt.Errorf("failed to read sequence: %w", err)
		}
		msg.Sequence = int32(binary.BigEndian.Uint32(seqBytes))
	}

	if header.MessageType == ErrorMessage {
		codeBytes := make([]byte, 4)
		if _, err := io.ReadFull(reader, codeBytes); err != nil {
			return nil, fmt.Errorf("failed to read error code: %w", err)
		}
		msg.ErrorCode = binary.BigEndian.Uint32(codeBytes)
	}

	sizeBytes := make([]byte, 4)
	if _, err := io.ReadFull(reader, sizeBytes); err != nil {
		return nil, fmt.Errorf("failed to read payload size: %w", err)
	}
	msg.PayloadSize = binary.BigEndian.Uint32(sizeBytes)

	if msg.PayloadSize > 0 {
		msg.Payload = make([]byte, msg.PayloadSize)
		if _, err := io.ReadFull(reader, msg.Payload); err != nil {
			return nil, fmt.Errorf("failed to read payload (expected %d bytes): %w", msg.PayloadSize, err)
		}
	}

	return msg, nil
}

// NewSessionRequest frames the JSON session parameters.
func NewSessionRequest(payload []byte, compression CompressionMethod) *Message {
	header := NewHeader(FullClientRequest, NoSequenceNumber, JSONSerialization, compression)
	return &Message{
		Header:      header,
		PayloadSize: uint32(len(payload)),
		Payload:     payload,
	}
}

// NewAudioChunk frames one chunk of captured audio. The final chunk carries
// a negated sequence so the gateway knows the stream ended.
func NewAudioChunk(audioData []byte, sequence int32, isLast bool, compression CompressionMethod) *Message {
	var flags MessageFlags
	if isLast {
		if sequence != 0 {
			flags = NegativeSequenceNumber
			sequence = -sequence
		} else {
			flags = LastPacketNoSequence
		}
	} else {
		if sequence > 0 {
			flags = PositiveSequenceNumber
		} else {
			flags = NoSequenceNumber
		}
	}

	header := NewHeader(AudioOnlyRequest, flags, NoSerialization, compression)
	return &Message{
		Header:      header,
		Sequence:    sequence,
		PayloadSize: uint32(len(audioData)),
		Payload:     audioData,
	}
}

// IsLastPacket reports whether the frame closes the stream.
func (m *Message) IsLastPacket() bool {
	switch m.Header.MessageFlags & 0b0011 {
	case LastPacketNoSequence, NegativeSequenceNumber:
		return true
	default:
		return false
	}
}

// IsErrorMessage reports whether the frame is a gateway error.
func (m *Message) IsErrorMessage() bool {
	return m.Header.MessageType == ErrorMessage
}
