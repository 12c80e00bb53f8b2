package speech

import (
	"bytes"
	"testing"
)

func TestProtocolEncoding(t *testing.T) {
	testPayload := []byte("test payload data")
	header := NewHeader(FullClientRequest, NoSequenceNumber, JSONSerialization, GzipCompression)

	originalMsg := &Message{
		Header:      header,
		PayloadSize: uint32(len(testPayload)),
		Payload:     testPayload,
	}

	encodedData, err := EncodeMessage(originalMsg)
	if err != nil {
		t.Fatalf("Failed to encode message: %v", err)
	}

	decodedMsg, err := DecodeMessage(bytes.NewReader(encodedData))
	if err != nil {
		t.Fatalf("Failed to decode message: %v", err)
	}

	if decodedMsg.Header.MessageType != originalMsg.Header.MessageType {
		t.Errorf("Message type mismatch: got %v, want %v", decodedMsg.Header.MessageType, originalMsg.Header.MessageType)
	}
	if decodedMsg.PayloadSize != originalMsg.PayloadSize {
		t.Errorf("Payload size mismatch: got %v, want %v", decodedMsg.PayloadSize, originalMsg.PayloadSize)
	}
	if !bytes.Equal(decodedMsg.Payload, originalMsg.Payload) {
		t.Errorf("Payload mismatch: got %q, want %q", decodedMsg.Payload, originalMsg.Payload)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	msg := NewAudioChunk([]byte("chunk"), 7, false, NoCompression)

	encoded, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("Failed to encode message: %v", err)
	}
	decoded, err := DecodeMessage(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Failed to decode message: %v", err)
	}

	if decoded.Sequence != 7 {
		t.Errorf("Sequence mismatch: got %d, want 7", decoded.Sequence)
	}
	if decoded.IsLastPacket() {
		t.Error("Non-final chunk reported as last packet")
	}
}

func TestLastAudioChunkNegatesSequence(t *testing.T) {
	msg := NewAudioChunk([]byte("tail"), 9, true, NoCompression)

	if msg.Header.MessageFlags&0b0011 != NegativeSequenceNumber {
		t.Fatalf("Expected negative sequence flags, got %04b", msg.Header.MessageFlags)
	}
	if msg.Sequence != -9 {
		t.Errorf("Sequence not negated: got %d", msg.Sequence)
	}
	if !msg.IsLastPacket() {
		t.Error("Final chunk not reported as last packet")
	}
}

func TestErrorFrameCarriesCode(t *testing.T) {
	payload := []byte(`{"message":"quota exceeded"}`)
	msg := &Message{
		Header:      NewHeader(ErrorMessage, NoSequenceNumber, JSONSerialization, NoCompression),
		PayloadSize: uint32(len(payload)),
		Payload:     payload,
	}

	encoded, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("Failed to encode message: %v", err)
	}
	// The error code sits between the header and the payload size.
	full := append(encoded[:4:4], append([]byte{0x00, 0x00, 0x11, 0x22}, encoded[4:]...)...)

	decoded, err := DecodeMessage(bytes.NewReader(full))
	if err != nil {
		t.Fatalf("Failed to decode message: %v", err)
	}
	if !decoded.IsErrorMessage() {
		t.Fatal("Frame not reported as error message")
	}
	if decoded.ErrorCode != 0x1122 {
		t.Errorf("Error code mismatch: got %#x, want 0x1122", decoded.ErrorCode)
	}
	if !bytes.Equal(decoded.Payload, payload) {
		t.Errorf("Payload mismatch: got %q", decoded.Payload)
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("paddy field audio "), 64)

	compressed, err := GzipCompression.Compress(original)
	if err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if len(compressed) >= len(original) {
		t.Errorf("Compression did not shrink payload: %d >= %d", len(compressed), len(original))
	}

	restored, err := GzipCompression.Decompress(compressed)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if !bytes.Equal(restored, original) {
		t.Error("Round trip mismatch")
	}
}

func TestNoCompressionPassthrough(t *testing.T) {
	data := []byte("raw pcm")
	out, err := NoCompression.Compress(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("NoCompression modified the payload")
	}
}
