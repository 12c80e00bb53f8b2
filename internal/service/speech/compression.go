package speech

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Compress applies the method to a payload before it is framed.
func (c CompressionMethod) Compress(data []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return data, nil
	case GzipCompression:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			w.Close()
			return nil, fmt.Errorf("gzip write failed: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("gzip close failed: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression method: %d", c)
	}
}

// Decompress reverses Compress on a received payload.
func (c CompressionMethod) Decompress(data []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return data, nil
	case GzipCompression:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip reader creation failed: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("gzip read failed: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported compression method: %d", c)
	}
}
